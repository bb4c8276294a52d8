package accountservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// Client клиент для работы с AccountService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AccountService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindByIDNumber находит аккаунт по номеру документа
func (c *Client) FindByIDNumber(ctx context.Context, idNumber string) (*domain.Account, error) {
	endpoint := fmt.Sprintf("%s/internal/accounts/by-id-number/%s", c.baseURL, url.PathEscape(idNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid id number format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrAccountNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := account.ToDomain()
	if !result.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidResponse, account.Role)
	}

	return result, nil
}

// Save сохраняет аккаунт и возвращает его ID
func (c *Client) Save(ctx context.Context, account *domain.Account) (string, error) {
	c.log.Info("Saving account id_number=%s role=%s", account.IDNumber, account.Role)

	payload, err := json.Marshal(FromDomain(account))
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode account: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/internal/accounts", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusConflict:
		return "", ErrAccountExists
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var saved SaveResponse
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if saved.ID == "" {
		return "", fmt.Errorf("%w: empty account id", ErrInvalidResponse)
	}

	c.log.Info("Saved account id=%s", saved.ID)
	return saved.ID, nil
}
