package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vobe/staff-auth-service/application/port/inbound"
	"github.com/vobe/staff-auth-service/application/port/outbound"
	"github.com/vobe/staff-auth-service/domain/event"
	"github.com/vobe/staff-auth-service/domain/valueobject"
	"github.com/vobe/staff-auth-service/infrastructure/service/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

// dummyPassword is hashed once at startup so an unknown email still pays for
// a full bcrypt compare.
const dummyPassword = "timing-equalizer-Pa55!"

type RateLimitPolicy struct {
	IPAttempts    int
	IPWindow      time.Duration
	UserAttempts  int
	UserWindow    time.Duration
	BlockDuration time.Duration
}

func DefaultRateLimitPolicy() RateLimitPolicy {
	return RateLimitPolicy{
		IPAttempts:    5,
		IPWindow:      15 * time.Minute,
		UserAttempts:  5,
		UserWindow:    time.Hour,
		BlockDuration: 30 * time.Minute,
	}
}

type LoginUseCase struct {
	repo        outbound.EmployeeRepository
	passwordSvc outbound.PasswordService
	tokenSvc    outbound.TokenService
	publisher   outbound.EventPublisher
	limiter     inbound.RateLimitService
	policy      RateLimitPolicy
	loginQueue  string
	logger      logger.Logger
	dummyHash   string
	now         func() time.Time
}

// NewLoginUseCase wires the login flow. limiter may be nil, which disables
// attempt tracking.
func NewLoginUseCase(
	repo outbound.EmployeeRepository,
	passwordSvc outbound.PasswordService,
	tokenSvc outbound.TokenService,
	publisher outbound.EventPublisher,
	limiter inbound.RateLimitService,
	policy RateLimitPolicy,
	loginQueue string,
	log logger.Logger,
) *LoginUseCase {
	dummyHash, err := passwordSvc.HashPassword(dummyPassword)
	if err != nil {
		log.Warn(context.Background(), "Could not prepare dummy hash, unknown emails will answer faster", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &LoginUseCase{
		repo:        repo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		publisher:   publisher,
		limiter:     limiter,
		policy:      policy,
		loginQueue:  loginQueue,
		logger:      log,
		dummyHash:   dummyHash,
		now:         time.Now,
	}
}

func (uc *LoginUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	credentials, err := valueobject.NewCredentials(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	ip := req.IPAddress
	ipKey := "ip:" + ip
	if err := uc.checkAllowed(ctx, ipKey, uc.policy.IPAttempts, uc.policy.IPWindow); err != nil {
		logger.LogSecurityEvent(ctx, uc.logger, "ip_login_rejected", "HIGH", map[string]interface{}{
			"ip":    ip,
			"email": credentials.Email(),
		})
		return nil, err
	}

	// The per-user counter is keyed on the submitted email, known or not, so
	// a lockout never reveals whether an account exists.
	userKey := "user:" + credentials.Email()
	if err := uc.checkAllowed(ctx, userKey, uc.policy.UserAttempts, uc.policy.UserWindow); err != nil {
		logger.LogSecurityEvent(ctx, uc.logger, "user_login_rejected", "MEDIUM", map[string]interface{}{
			"email": credentials.Email(),
			"ip":    ip,
		})
		return nil, err
	}

	user, err := uc.repo.GetByEmail(ctx, credentials.Email())
	if err != nil {
		if errors.Is(err, outbound.ErrEmployeeNotFound) {
			// Burn the same bcrypt cost as a real comparison.
			_, _ = uc.passwordSvc.VerifyPassword(credentials.Password(), uc.dummyHash)
			uc.recordFailure(ctx, ip, userKey)
			logger.LogAuthEvent(ctx, uc.logger, "login_failed_user_not_found", "", ip, false, map[string]interface{}{
				"email": credentials.Email(),
			})
			return nil, ErrInvalidCredentials
		}
		uc.logger.Error(ctx, "Failed to find user", err, map[string]interface{}{
			"email": credentials.Email(),
		})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	start := time.Now()
	valid, err := uc.passwordSvc.VerifyPassword(credentials.Password(), user.Password)
	logger.LogPerformance(ctx, uc.logger, "password_verification", time.Since(start), map[string]interface{}{
		"user_id": user.ID,
	})
	if err != nil {
		uc.logger.Error(ctx, "Password verification error", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}
	if err != nil || !valid {
		uc.recordFailure(ctx, ip, userKey)
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_invalid_password", user.ID, ip, false, map[string]interface{}{
			"email": user.Email,
		})
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Type:   user.Type,
		Level:  user.Level,
	})
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	msg := event.NewUserLogin(user, ip, uc.now())
	if err := uc.publisher.Publish(ctx, msg, uc.loginQueue); err != nil {
		uc.logger.Error(ctx, "Login event publish failed", err, map[string]interface{}{
			"queue":      uc.loginQueue,
			"message_id": msg.MessageID,
			"user_id":    user.ID,
		})
		return nil, fmt.Errorf("%w: %w", outbound.ErrEventPublishFailed, err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "login_successful", user.ID, ip, true, map[string]interface{}{
		"email": user.Email,
		"type":  user.Type,
	})

	return &inbound.LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      inbound.NewEmployeeResponse(user),
	}, nil
}

// checkAllowed rejects a key that is blocked or has used up its attempts.
// Limiter outages are logged and let the request through.
func (uc *LoginUseCase) checkAllowed(ctx context.Context, key string, limit int, window time.Duration) error {
	if uc.limiter == nil || limit <= 0 {
		return nil
	}

	blocked, err := uc.limiter.IsBlocked(ctx, key)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check block status", err, map[string]interface{}{"key": key})
		return nil
	}
	if blocked {
		return ErrTooManyAttempts
	}

	allowed, err := uc.limiter.CheckLimit(ctx, key, limit, window)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check rate limit", err, map[string]interface{}{"key": key})
		return nil
	}
	if !allowed {
		if err := uc.limiter.Block(ctx, key, uc.policy.BlockDuration, "login attempts exceeded"); err != nil {
			uc.logger.Error(ctx, "Failed to block key", err, map[string]interface{}{"key": key})
		}
		return ErrTooManyAttempts
	}
	return nil
}

var _ inbound.AuthUseCase = (*LoginUseCase)(nil)

// recordFailure counts a failed attempt against both the IP and the
// submitted email, whether or not the email belongs to an account.
func (uc *LoginUseCase) recordFailure(ctx context.Context, ip, userKey string) {
	if uc.limiter == nil {
		return
	}
	if err := uc.limiter.Increment(ctx, "ip:"+ip, uc.policy.IPWindow); err != nil {
		uc.logger.Error(ctx, "Failed to count failed attempt", err, map[string]interface{}{"ip": ip})
	}
	if err := uc.limiter.Increment(ctx, userKey, uc.policy.UserWindow); err != nil {
		uc.logger.Error(ctx, "Failed to count failed attempt", err, map[string]interface{}{"key": userKey})
	}
}
