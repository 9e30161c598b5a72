package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gomarket/internal/middleware"
	"gomarket/internal/models"
	"gomarket/internal/services"
	"gomarket/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPickupService struct {
	verifyCodeFn  func(ctx context.Context, code string) (*services.PickupCodeVerification, error)
	confirmCodeFn func(ctx context.Context, code string, userID primitive.ObjectID) (*services.PickupCodeConfirmation, error)
	verifyKeyFn   func(ctx context.Context, pickupKey string) (*services.OrderVerification, error)
	confirmKeyFn  func(ctx context.Context, pickupKey string, info *models.CustomerInfo) (*services.OrderConfirmation, error)
	orderStatusFn func(ctx context.Context, orderNumber string) (*services.OrderStatusView, error)
	listRecordsFn func(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error)
}

func (s *stubPickupService) VerifyPickupCode(ctx context.Context, code string) (*services.PickupCodeVerification, error) {
	return s.verifyCodeFn(ctx, code)
}

func (s *stubPickupService) ConfirmPickupCode(ctx context.Context, code string, userID primitive.ObjectID) (*services.PickupCodeConfirmation, error) {
	return s.confirmCodeFn(ctx, code, userID)
}

func (s *stubPickupService) VerifyPickupKey(ctx context.Context, pickupKey string) (*services.OrderVerification, error) {
	return s.verifyKeyFn(ctx, pickupKey)
}

func (s *stubPickupService) ConfirmPickupKey(ctx context.Context, pickupKey string, info *models.CustomerInfo) (*services.OrderConfirmation, error) {
	return s.confirmKeyFn(ctx, pickupKey, info)
}

func (s *stubPickupService) GetOrderStatus(ctx context.Context, orderNumber string) (*services.OrderStatusView, error) {
	return s.orderStatusFn(ctx, orderNumber)
}

func (s *stubPickupService) ListUserPickupRecords(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.PickupRecord, int64, error) {
	return s.listRecordsFn(ctx, userID, params)
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestVerifyCodeEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubPickupService{
		verifyCodeFn: func(_ context.Context, code string) (*services.PickupCodeVerification, error) {
			if code == "GOODCODE1234" {
				return &services.PickupCodeVerification{
					PickupCode: &models.PickupCodeSummary{Code: code},
				}, nil
			}
			return nil, services.ErrNotFound
		},
	}
	handler := NewPickupHandler(svc)
	router := gin.New()
	router.POST("/verify", handler.VerifyCode)

	w := performJSON(router, http.MethodPost, "/verify", gin.H{"code": "GOODCODE1234"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.StatusSuccess, decodeEnvelope(t, w).Status)

	w = performJSON(router, http.MethodPost, "/verify", gin.H{"code": "MISSING12345"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope(t, w).Error.Code)

	w = performJSON(router, http.MethodPost, "/verify", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmCodeEndpointErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := primitive.NewObjectID()

	tests := []struct {
		name     string
		svcErr   error
		wantCode int
		wantTag  string
	}{
		{"expired", services.ErrExpired, http.StatusBadRequest, "CODE_EXPIRED"},
		{"exhausted", services.ErrQuotaExhausted, http.StatusBadRequest, "QUOTA_EXHAUSTED"},
		{"already redeemed", services.ErrAlreadyRedeemed, http.StatusBadRequest, "ALREADY_REDEEMED"},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubPickupService{
				confirmCodeFn: func(context.Context, string, primitive.ObjectID) (*services.PickupCodeConfirmation, error) {
					return nil, tt.svcErr
				},
			}
			router := gin.New()
			router.POST("/confirm", func(c *gin.Context) {
				c.Set(middleware.ContextUserID, userID)
			}, NewPickupHandler(svc).ConfirmCode)

			w := performJSON(router, http.MethodPost, "/confirm", gin.H{"code": "GOODCODE1234"})
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantTag, decodeEnvelope(t, w).Error.Code)
		})
	}
}

func TestConfirmCodeEndpointRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/confirm", NewPickupHandler(&stubPickupService{}).ConfirmCode)

	w := performJSON(router, http.MethodPost, "/confirm", gin.H{"code": "GOODCODE1234"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConfirmKeyEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var receivedInfo *models.CustomerInfo
	svc := &stubPickupService{
		confirmKeyFn: func(_ context.Context, key string, info *models.CustomerInfo) (*services.OrderConfirmation, error) {
			receivedInfo = info
			return &services.OrderConfirmation{
				OrderNumber:  "AP1TEST0005",
				DeliveryData: "download-link",
				PickedUpAt:   time.Now(),
			}, nil
		},
	}
	router := gin.New()
	router.POST("/pickup/confirm", NewPickupHandler(svc).ConfirmKey)

	w := performJSON(router, http.MethodPost, "/pickup/confirm", gin.H{
		"pickup_key":    "AABBCCDD11223344",
		"customer_info": gin.H{"email": "buyer@example.com"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, receivedInfo)
	assert.Equal(t, "buyer@example.com", receivedInfo.Email)
}

func TestGetOrderStatusEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &stubPickupService{
		orderStatusFn: func(_ context.Context, orderNumber string) (*services.OrderStatusView, error) {
			return &services.OrderStatusView{
				OrderNumber: orderNumber,
				Status:      models.OrderStatusPending,
			}, nil
		},
	}
	router := gin.New()
	router.GET("/pickup/status/:orderNumber", NewPickupHandler(svc).GetOrderStatus)

	w := performJSON(router, http.MethodGet, "/pickup/status/AP1TEST0006", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	data, _ := json.Marshal(resp.Data)
	assert.Contains(t, string(data), "AP1TEST0006")
	assert.NotContains(t, string(data), "pickup_key", "tracking view never leaks the key")
}
