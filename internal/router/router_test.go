package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finora-backend/internal/config"
	"finora-backend/internal/database"
	"finora-backend/internal/models"
	"finora-backend/internal/repositories"
	"finora-backend/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
	cfg    *config.Config
	db     *database.DB
	echo   *echo.Echo
	cancel context.CancelFunc
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.cfg = &config.Config{
		Server: config.ServerConfig{CORSAllowOrigins: []string{"http://localhost:3000"}},
		Auth: config.AuthConfig{
			JWTSecret:           "router-test-secret",
			Issuer:              "finora-api",
			AccessTokenDuration: time.Hour,
		},
		Security: config.SecurityConfig{RateLimitPerSecond: 1000, RateLimitBurst: 1000},
	}
	s.db = database.SetupTestDB(s.T())
	s.build()
}

func (s *RouterSuite) TearDownTest() {
	s.cancel()
}

func (s *RouterSuite) build() {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s.echo = New(ctx, s.cfg, s.db, logger, prometheus.NewRegistry())
}

func (s *RouterSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (s *RouterSuite) bearer(username string) string {
	user := database.CreateTestUser(s.T(), s.db, username)
	token, _, err := services.NewTokenService(&s.cfg.Auth).GenerateAccessToken(user)
	s.Require().NoError(err)
	return "Bearer " + token
}

func (s *RouterSuite) TestCategoryDeleteNullsTransactionCategory() {
	rec := s.do(http.MethodPost, "/api/categorias/", `{"nombre":"Comida"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.JSONEq(`{"id":1,"nombre":"Comida"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/transacciones/",
		`{"categoria_id":1,"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.JSONEq(`{"id":1,"usuario":null,"categoria":{"id":1,"nombre":"Comida"},"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`, rec.Body.String())

	rec = s.do(http.MethodDelete, "/api/categorias/1/", "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())

	rec = s.do(http.MethodGet, "/api/transacciones/1/", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"id":1,"usuario":null,"categoria":null,"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`, rec.Body.String())
}

func (s *RouterSuite) TestRenameIsReflectedInTransactions() {
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/categorias/", `{"nombre":"Comida"}`).Code)
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/api/transacciones/",
		`{"categoria_id":1,"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`).Code)

	rec := s.do(http.MethodPatch, "/api/categorias/1/", `{"nombre":"Alimentación"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/transacciones/", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[{"id":1,"usuario":null,"categoria":{"id":1,"nombre":"Alimentación"},"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}]`, rec.Body.String())
}

func (s *RouterSuite) TestTrailingSlashIsOptional() {
	rec := s.do(http.MethodPost, "/api/categorias", `{"nombre":"Comida"}`)
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/categorias/1", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"id":1,"nombre":"Comida"}`, rec.Body.String())
}

func (s *RouterSuite) TestInvalidTransactionPersistsNothing() {
	rec := s.do(http.MethodPost, "/api/transacciones/",
		`{"categoria_id":42,"descripcion":"Almuerzo","monto":15000,"fecha":"2024-01-10"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_001", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/transacciones/",
		`{"descripcion":"`+strings.Repeat("x", 201)+`","monto":1,"fecha":"2024-01-10"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/transacciones/", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterSuite) TestUnknownRouteAndMethod() {
	rec := s.do(http.MethodGet, "/api/presupuestos/", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("RESOURCE_001", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/categorias/1/", `{"nombre":"Comida"}`)
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal("REQUEST_001", s.errorCode(rec))
}

func (s *RouterSuite) TestAuthenticatedCreateSetsOwner() {
	token := s.bearer("ana")

	rec := s.do(http.MethodPost, "/api/transacciones/",
		`{"usuario":999,"descripcion":"Cena","monto":-20.5,"fecha":"2024-02-01"}`,
		echo.HeaderAuthorization, token)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(float64(1), body["usuario"])
	s.Nil(body["categoria"])
}

func (s *RouterSuite) TestProviderTokenProvisionsUser() {
	token, _, err := services.NewTokenService(&s.cfg.Auth).GenerateAccessToken(&models.User{ID: 77, Username: "luis"})
	s.Require().NoError(err)
	s.cfg.Auth.Required = true
	s.build()

	rec := s.do(http.MethodPost, "/api/transacciones/",
		`{"descripcion":"Bus","monto":2.5,"fecha":"2024-03-01"}`,
		echo.HeaderAuthorization, "Bearer "+token)
	s.Require().Equal(http.StatusCreated, rec.Code)

	user, err := repositories.NewUserRepository(s.db.DB).GetByUsername(context.Background(), "luis")
	s.Require().NoError(err)

	var body struct {
		Usuario *uint `json:"usuario"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().NotNil(body.Usuario)
	s.Equal(user.ID, *body.Usuario)

	rec = s.do(http.MethodGet, "/api/transacciones/", "", echo.HeaderAuthorization, "Bearer "+token)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestInvalidTokenIsRejected() {
	rec := s.do(http.MethodGet, "/api/categorias/", "", echo.HeaderAuthorization, "Bearer not-a-token")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))
}

func (s *RouterSuite) TestAuthRequired() {
	s.cfg.Auth.Required = true
	s.build()

	rec := s.do(http.MethodGet, "/api/categorias/", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_001", s.errorCode(rec))

	rec = s.do(http.MethodGet, "/api/categorias/", "", echo.HeaderAuthorization, s.bearer("ana"))
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Trace-ID"))

	s.do(http.MethodGet, "/api/categorias/", "")

	rec = s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "finora_resource_operations_total")

	rec = s.do(http.MethodGet, "/docs/openapi.json", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/api/transacciones/{id}/")
}

func (s *RouterSuite) TestHandlerErrorsAreCounted() {
	rec := s.do(http.MethodGet, "/api/categorias/99/", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `code="CATEGORY_001"`)
}

func (s *RouterSuite) TestNullRequiredFieldIsRejected() {
	rec := s.do(http.MethodPost, "/api/transacciones/", `{"descripcion":"Pan","monto":3,"fecha":"2024-01-10"}`)
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPatch, "/api/transacciones/1/", `{"monto":null}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_002", s.errorCode(rec))

	rec = s.do(http.MethodGet, "/api/transacciones/1/", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"monto":3`)
}
