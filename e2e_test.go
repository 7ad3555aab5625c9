//go:build integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"

	database "github.com/FACorreiaa/go-travel-qa-suggestions/app/db"
	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/auth"
	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/lookup"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/nearby"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/profile"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/qa"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/router"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// fixedGenerator stands in for the language model.
type fixedGenerator struct{}

func (fixedGenerator) Generate(context.Context, string, generativeAI.GenerateOptions) ([]string, error) {
	var b strings.Builder
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, "ชื่อสถานที่: สถานที่ %d\nรายละเอียด: ทดสอบ\nที่ตั้ง: กรุงเทพ\nวันเปิดทำการ: ทุกวัน\nเวลาเปิด-ปิด: 08:00 - 17:00\nระยะทาง: %d กิโลเมตร\n\n", i, i)
	}
	return []string{b.String()}, nil
}

type fixedImages struct{}

func (fixedImages) Resolve(_ context.Context, name string) string {
	return "https://img.example/" + name
}

// E2ETestSuite runs complete user workflows against a real database.
type E2ETestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	server    *httptest.Server
	client    *http.Client
	userEmail string
	jwtCfg    config.JWTConfig
}

func (s *E2ETestSuite) SetupSuite() {
	_ = godotenv.Load()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		s.T().Skip("TEST_DATABASE_URL not set")
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s.Require().NoError(database.RunMigrations(url, logger))
	pool, err := database.Init(&database.DatabaseConfig{ConnectionURL: url}, logger)
	s.Require().NoError(err)
	s.Require().True(database.WaitForDB(context.Background(), pool, logger))
	s.pool = pool

	jwtCfg := config.JWTConfig{SecretKey: "e2e-secret", AccessTokenTTL: 30 * time.Minute, Issuer: "travel-qa-api"}
	s.jwtCfg = jwtCfg
	recommender := recommendation.NewGenerator(fixedGenerator{}, fixedImages{}, generativeAI.GenerateOptions{}, logger)

	r := router.SetupRouter(&router.Config{
		AuthHandler:            auth.NewHandlerImpl(auth.NewServiceImpl(auth.NewRepositoryImpl(pool, logger), jwtCfg, logger), logger),
		ProfileHandler:         profile.NewHandlerImpl(profile.NewServiceImpl(profile.NewRepositoryImpl(pool, logger), logger), logger),
		LookupHandler:          lookup.NewHandlerImpl(lookup.NewServiceImpl(lookup.NewRepositoryImpl(pool, logger), time.Minute, logger), logger),
		NearbyHandler:          nearby.NewHandlerImpl(nearby.NewServiceImpl(nil, "200m", logger), logger),
		QAHandler:              qa.NewHandlerImpl(qa.NewServiceImpl(qa.NewRepositoryImpl(pool, logger), recommender, logger), logger),
		AuthenticateMiddleware: auth.Authenticate(logger, jwtCfg),
		QARateLimit:            100,
		Logger:                 logger,
	})

	s.server = httptest.NewServer(r)
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.userEmail = fmt.Sprintf("e2e-%s@example.com", uuid.NewString()[:8])
}

func (s *E2ETestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *E2ETestSuite) do(method, path, token string, body interface{}) (*http.Response, []byte) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return resp, out.Bytes()
}

func (s *E2ETestSuite) TestAccountWorkflow() {
	resp, _ := s.do(http.MethodPost, "/signup", "", map[string]string{
		"account_email": s.userEmail, "account_password": "secret1", "confirm_password": "secret1",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/signup", "", map[string]string{
		"account_email": s.userEmail, "account_password": "secret1", "confirm_password": "secret1",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode, "duplicate email")

	resp, body := s.do(http.MethodPost, "/signin", "", map[string]string{
		"account_email": s.userEmail, "account_password": "secret1",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var token types.TokenResponse
	s.Require().NoError(json.Unmarshal(body, &token))

	var account types.Account
	claims := s.accountFromToken(token.Token)
	path := fmt.Sprintf("/profile/%d", claims)
	resp, body = s.do(http.MethodGet, path, token.Token, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NoError(json.Unmarshal(body, &account))
	s.Equal(s.userEmail, account.Email)

	resp, _ = s.do(http.MethodPut, path, token.Token, map[string]string{"account_name": "E2E"})
	s.Equal(http.StatusOK, resp.StatusCode)

	locPath := fmt.Sprintf("/profile_location/%d", claims)
	loc := map[string]float64{"latitude": 13.7, "longitude": 100.5}
	resp, _ = s.do(http.MethodPost, locPath, token.Token, loc)
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp, _ = s.do(http.MethodPost, locPath, token.Token, loc)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, fmt.Sprintf("/profile/%d", claims+1), token.Token, nil)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *E2ETestSuite) accountFromToken(token string) int64 {
	claims := &types.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.jwtCfg.SecretKey), nil
	})
	s.Require().NoError(err)
	return claims.AccountID
}

func (s *E2ETestSuite) TestQuestionnaireWorkflow() {
	resp, body := s.do(http.MethodPost, "/qa_transaction", "", map[string]interface{}{
		"latitude": 13.7, "longitude": 100.5, "trip_id": 1, "distance_id": 1, "value_id": 1,
		"location_interest_id": 1, "activity_id": []int{1, 2}, "emotional_id": 3,
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                      `json:"success"`
		Data    types.QATransactionResult `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(body, &envelope))
	s.True(envelope.Success)
	s.Positive(envelope.Data.AccountID)
	s.Len(envelope.Data.Recommendations, recommendation.MaxPlaces)

	resp, body = s.do(http.MethodGet, fmt.Sprintf("/qa_results?account_id=%d", envelope.Data.AccountID), "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var results []types.RecommendedPlace
	s.Require().NoError(json.Unmarshal(body, &results))
	s.LessOrEqual(len(results), recommendation.MaxPlaces)
	for _, r := range results {
		s.Equal(envelope.Data.AccountID, r.AccountID)
	}

	resp, _ = s.do(http.MethodPost, "/qa_transaction", "", map[string]interface{}{"latitude": 13.7})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) TestLookupLists() {
	for _, path := range []string{"/qa_picture", "/qa_activity", "/qa_traveling", "/qa_distance", "/qa_value", "/qa_emotional", "/province/1"} {
		resp, body := s.do(http.MethodGet, path, "", nil)
		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.True(bytes.HasPrefix(body, []byte("[")), path)
	}
}

func TestE2ETestSuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
