package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// лимитеры устройств, которые не обращались дольше, удаляются
	limiterIdleTTL = 30 * time.Minute
	// чистка запускается, только когда устройств накопилось много
	limiterPruneThreshold = 1024
	// после стольких неверных вводов код сгорает
	maxCheckAttempts = 5
)

// Config параметры выдачи кодов
type Config struct {
	CodeLength    int
	RatePerMinute float64
	Burst         int
	SendTimeout   time.Duration
	CodeTTL       time.Duration
}

type pendingCode struct {
	code      string
	subject   string
	expiresAt time.Time
	failures  int
}

type deviceLimiter struct {
	limiter *rate.Limiter
	last    time.Time
}

// Service выдает одноразовые коды и проверяет их.
// Generate/Verify не хранят код: сравнение делает вызывающий.
// Issue/Check запоминают последний код устройства до истечения CodeTTL.
type Service struct {
	cfg      Config
	notifier Notifier
	logger   Logger

	mu       sync.Mutex
	limiters map[string]*deviceLimiter
	pending  map[string]pendingCode
	now      func() time.Time
	wg       sync.WaitGroup
}

// NewService создает сервис одноразовых кодов
func NewService(cfg Config, notifier Notifier, logger Logger) *Service {
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 3
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}

	return &Service{
		cfg:      cfg,
		notifier: notifier,
		logger:   logger,
		limiters: make(map[string]*deviceLimiter),
		pending:  make(map[string]pendingCode),
		now:      time.Now,
	}
}

// Generate выдает новый код для устройства и отправляет его без ожидания доставки
func (s *Service) Generate(ctx context.Context, deviceID, destination string) (string, error) {
	if deviceID == "" {
		return "", ErrInvalidInput
	}

	if !s.allow(deviceID) {
		s.logger.Warn("Generate: rate limit exceeded for device=%s", deviceID)
		return "", ErrRateLimited
	}

	code, err := randomDigits(s.cfg.CodeLength)
	if err != nil {
		s.logger.Error("Generate: %v", err)
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	sendCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		sendCtx, cancel := context.WithTimeout(sendCtx, s.cfg.SendTimeout)
		defer cancel()

		if err := s.notifier.SendOTP(sendCtx, deviceID, destination, code); err != nil {
			s.logger.Error("Generate: delivery to device=%s failed: %v", deviceID, err)
			return
		}
		s.logger.Info("Generate: code delivered to device=%s", deviceID)
	}()

	return code, nil
}

// Verify сравнивает введенный код с выданным
func (s *Service) Verify(entered, expected string) bool {
	return entered == expected
}

// Issue выдает код и запоминает его для последующей проверки через Check.
// subject привязывает код к аккаунту, которому он отправлен.
// Новый код заменяет предыдущий код устройства.
func (s *Service) Issue(ctx context.Context, deviceID, subject, destination string) error {
	code, err := s.Generate(ctx, deviceID, destination)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, id)
		}
	}
	s.pending[deviceID] = pendingCode{code: code, subject: subject, expiresAt: now.Add(s.cfg.CodeTTL)}
	return nil
}

// Check проверяет введенный код устройства для аккаунта subject. Верный код погашается
func (s *Service) Check(deviceID, subject, entered string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[deviceID]
	if !ok {
		return false
	}
	if s.now().After(p.expiresAt) {
		delete(s.pending, deviceID)
		return false
	}
	if p.subject != subject || !s.Verify(entered, p.code) {
		p.failures++
		if p.failures >= maxCheckAttempts {
			delete(s.pending, deviceID)
			s.logger.Warn("Check: too many wrong codes for device=%s, code revoked", deviceID)
			return false
		}
		s.pending[deviceID] = p
		return false
	}

	delete(s.pending, deviceID)
	return true
}

// Wait дожидается завершения начатых отправок (при остановке сервиса)
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) allow(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.limiters) > limiterPruneThreshold {
		for id, dl := range s.limiters {
			if now.Sub(dl.last) > limiterIdleTTL {
				delete(s.limiters, id)
			}
		}
	}

	dl, ok := s.limiters[deviceID]
	if !ok {
		dl = &deviceLimiter{
			limiter: rate.NewLimiter(rate.Limit(s.cfg.RatePerMinute/60), s.cfg.Burst),
		}
		s.limiters[deviceID] = dl
	}
	dl.last = now

	return dl.limiter.AllowN(now, 1)
}

func randomDigits(n int) (string, error) {
	max := big.NewInt(10)
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
