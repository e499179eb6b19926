package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/middleware"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
)

type stubAuthService struct {
	login   dto.LoginRequest
	expires time.Time
	err     error
}

func (s *stubAuthService) Register(_ context.Context, req dto.RegisterRequest) (dto.AuthResponse, time.Time, error) {
	if s.err != nil {
		return dto.AuthResponse{}, time.Time{}, s.err
	}
	return dto.AuthResponse{User: models.User{ID: 1, Email: req.Email}, Token: "tok"}, s.expires, nil
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.AuthResponse, time.Time, error) {
	s.login = req
	if s.err != nil {
		return dto.AuthResponse{}, time.Time{}, s.err
	}
	return dto.AuthResponse{User: models.User{ID: 1, Email: req.Email}, Token: "tok"}, s.expires, nil
}

func (s *stubAuthService) Me(_ context.Context, userID int64) (models.User, error) {
	return models.User{ID: userID}, s.err
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{expires: time.Now().Add(time.Hour)}
	resp := &stubResponseHandler{}
	h := NewAuthHandlers(&Deps{ResponseHandler: resp, AuthSvc: svc, CookieSecure: true})

	rr := httptest.NewRecorder()
	h.Login(rr, newRequest(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"secret1"}`, 0))

	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("status mismatch: got %d", resp.writeSuccessStatus)
	}
	if svc.login.Email != "a@b.com" || svc.login.Password != "secret1" {
		t.Fatalf("login request mismatch: got %+v", svc.login)
	}
	c := sessionCookie(rr)
	if c == nil {
		t.Fatalf("expected session cookie")
	}
	if c.Value != "tok" || !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie mismatch: got %+v", c)
	}
}

func TestLoginFailureSetsNoCookie(t *testing.T) {
	svc := &stubAuthService{err: errs.NewUnauthorizedError("invalid email or password")}
	resp := &stubResponseHandler{}
	h := NewAuthHandlers(&Deps{ResponseHandler: resp, AuthSvc: svc})

	rr := httptest.NewRecorder()
	h.Login(rr, newRequest(http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"wrong"}`, 0))

	if resp.handleErrorStatus != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d", resp.handleErrorStatus)
	}
	if sessionCookie(rr) != nil {
		t.Fatalf("unexpected session cookie")
	}
}

func TestRegisterReturnsCreated(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewAuthHandlers(&Deps{ResponseHandler: resp, AuthSvc: &stubAuthService{expires: time.Now().Add(time.Hour)}})

	rr := httptest.NewRecorder()
	h.Register(rr, newRequest(http.MethodPut, "/auth/login", `{"email":"a@b.com","password":"secret1","name":"Ana"}`, 0))

	if resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("status mismatch: got %d", resp.writeSuccessStatus)
	}
	if sessionCookie(rr) == nil {
		t.Fatalf("expected session cookie")
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewAuthHandlers(&Deps{ResponseHandler: resp, AuthSvc: &stubAuthService{}})

	rr := httptest.NewRecorder()
	h.Logout(rr, newRequest(http.MethodPost, "/auth/logout", "", 1))

	c := sessionCookie(rr)
	if c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", c)
	}
	if resp.writeSuccessStatus != http.StatusNoContent {
		t.Fatalf("status mismatch: got %d", resp.writeSuccessStatus)
	}
}

func TestMeRequiresProtection(t *testing.T) {
	h := NewAuthHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, AuthSvc: &stubAuthService{}})
	router := h.AuthRoutes(denyAll)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, newRequest(http.MethodGet, "/me", "", 0))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d", rr.Code)
	}
}
