package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"crossgate/internal/domain"
	"crossgate/internal/handler"
	"crossgate/internal/service"
	"crossgate/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postCustomToken(t *testing.T, h *handler.ExchangeHandler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/auth/custom-token", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CustomToken(c)
	return w
}

func TestCustomToken_Success(t *testing.T) {
	mockSvc := new(mocks.MockExchangeService)
	h := handler.NewExchangeHandler(mockSvc, zap.NewNop())

	mockSvc.On("Exchange", mock.Anything, mock.MatchedBy(func(in service.ExchangeInput) bool {
		return in.IDToken == "valid-id-token" && in.TargetApp == "partner-app"
	})).Return(&service.ExchangeOutput{
		CustomToken: "abc",
		Subject:     domain.Subject{ID: "uid123"},
	}, nil)

	body, _ := json.Marshal(map[string]string{
		"idToken":   "valid-id-token",
		"targetApp": "partner-app",
	})
	w := postCustomToken(t, h, body)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc", resp["customToken"])
	mockSvc.AssertExpectations(t)
}

func TestCustomToken_MissingIDToken(t *testing.T) {
	mockSvc := new(mocks.MockExchangeService)
	h := handler.NewExchangeHandler(mockSvc, zap.NewNop())

	body, _ := json.Marshal(map[string]string{"targetApp": "partner-app"})
	w := postCustomToken(t, h, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "idToken is required.", resp["error"])
	mockSvc.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestCustomToken_MalformedBody(t *testing.T) {
	mockSvc := new(mocks.MockExchangeService)
	h := handler.NewExchangeHandler(mockSvc, zap.NewNop())

	w := postCustomToken(t, h, []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "idToken is required.", resp["error"])
	mockSvc.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestCustomToken_VerificationFailure_GenericError(t *testing.T) {
	mockSvc := new(mocks.MockExchangeService)
	h := handler.NewExchangeHandler(mockSvc, zap.NewNop())

	mockSvc.On("Exchange", mock.Anything, mock.AnythingOfType("service.ExchangeInput")).
		Return(nil, domain.ErrInvalidToken)

	body, _ := json.Marshal(map[string]string{"idToken": "bad-token"})
	w := postCustomToken(t, h, body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unable to generate custom token.", resp["error"])
	assert.NotContains(t, w.Body.String(), "customToken")
}

func TestCustomToken_MintFailure_SameGenericError(t *testing.T) {
	mockSvc := new(mocks.MockExchangeService)
	h := handler.NewExchangeHandler(mockSvc, zap.NewNop())

	mockSvc.On("Exchange", mock.Anything, mock.AnythingOfType("service.ExchangeInput")).
		Return(nil, domain.ErrMintFailed)

	body, _ := json.Marshal(map[string]string{"idToken": "valid-id-token"})
	w := postCustomToken(t, h, body)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Unable to generate custom token."}`, w.Body.String())
}
