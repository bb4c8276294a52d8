package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetActiveServices получает все активные услуги
func (c *Client) GetActiveServices(ctx context.Context) ([]domain.ServiceDescriptor, error) {
	endpoint := fmt.Sprintf("%s/internal/services?active=true", c.baseURL)

	var services []Service
	if err := c.getJSON(ctx, endpoint, &services); err != nil {
		return nil, err
	}

	result := make([]domain.ServiceDescriptor, 0, len(services))
	for i := range services {
		if !services[i].Active {
			continue
		}
		result = append(result, services[i].ToDomain())
	}
	return result, nil
}

// GetByName получает услугу по названию
func (c *Client) GetByName(ctx context.Context, name string) (*domain.ServiceDescriptor, error) {
	endpoint := fmt.Sprintf("%s/internal/services/by-name/%s", c.baseURL, url.PathEscape(name))

	var service Service
	if err := c.getJSON(ctx, endpoint, &service); err != nil {
		return nil, err
	}

	result := service.ToDomain()
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrServiceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
