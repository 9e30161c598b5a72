package services

import (
	"context"
	"testing"
	"time"

	"gomarket/internal/models"
	"gomarket/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func issuanceFixture(liveCodes int64) (PickupCodeService, *stubCodeRepo) {
	merchantProduct := &stubProductRepo{
		getForMerchantFn: func(_ context.Context, id, merchantID primitive.ObjectID) (*models.Product, error) {
			return fixtureProduct(id), nil
		},
	}
	codeRepo := &stubCodeRepo{
		countByProductFn: func(context.Context, primitive.ObjectID) (int64, error) {
			return liveCodes, nil
		},
		createFn: func(_ context.Context, code *models.PickupCode) error {
			code.ID = primitive.NewObjectID()
			return nil
		},
	}
	return NewPickupCodeService(codeRepo, merchantProduct, testLogger()), codeRepo
}

func TestIssueCode(t *testing.T) {
	svc, _ := issuanceFixture(0)

	code, err := svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		&IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(10)})
	require.NoError(t, err)
	assert.Len(t, code.Code, models.PickupCodeLength)
	assert.True(t, code.IsActive)
	assert.Equal(t, 10, *code.UsageLimit)
}

func TestIssueCodeCeiling(t *testing.T) {
	// 20 live codes: the next issuance is refused.
	svc, _ := issuanceFixture(models.MaxCodesPerProduct)
	_, err := svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		&IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(1)})
	assert.ErrorIs(t, err, ErrCodeLimitReached)

	// One deletion later the count is 19 and issuance succeeds again.
	svc, _ = issuanceFixture(models.MaxCodesPerProduct - 1)
	_, err = svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		&IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(1)})
	assert.NoError(t, err)
}

func TestIssueCodeValidation(t *testing.T) {
	svc, _ := issuanceFixture(0)
	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name string
		req  *IssuePickupCodeRequest
		ok   bool
	}{
		{"usage without limit", &IssuePickupCodeRequest{Type: "usage"}, false},
		{"usage with zero limit", &IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(0)}, false},
		{"time without expiry", &IssuePickupCodeRequest{Type: "time"}, false},
		{"time with past expiry", &IssuePickupCodeRequest{Type: "time", ExpiresAt: &yesterday}, false},
		{"unknown type", &IssuePickupCodeRequest{Type: "forever"}, false},
		{"time valid", &IssuePickupCodeRequest{Type: "time", ExpiresAt: &tomorrow}, true},
		{"usage with expiry too", &IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(3), ExpiresAt: &tomorrow}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestIssueCodeRetriesOnCollision(t *testing.T) {
	svc, codeRepo := issuanceFixture(0)

	var attempts int
	codeRepo.createFn = func(_ context.Context, code *models.PickupCode) error {
		attempts++
		if attempts == 1 {
			return interfaces.ErrDuplicate
		}
		code.ID = primitive.NewObjectID()
		return nil
	}

	_, err := svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		&IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestIssueCodeForeignProduct(t *testing.T) {
	productRepo := &stubProductRepo{
		getForMerchantFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Product, error) {
			return nil, interfaces.ErrNotFound
		},
	}
	svc := NewPickupCodeService(&stubCodeRepo{}, productRepo, testLogger())

	_, err := svc.IssueCode(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(),
		&IssuePickupCodeRequest{Type: "usage", UsageLimit: intPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound, "a product the merchant does not own looks absent")
}

func TestUpdateCodeCannotUndercutUsedCount(t *testing.T) {
	existing := fixtureCode(intPtr(10), nil)
	existing.UsedCount = 6
	codeRepo := &stubCodeRepo{
		getForMerchantFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.PickupCode, error) {
			snapshot := *existing
			return &snapshot, nil
		},
		updateFn: func(context.Context, primitive.ObjectID, map[string]interface{}) error { return nil },
	}
	svc := NewPickupCodeService(codeRepo, &stubProductRepo{}, testLogger())

	_, err := svc.UpdateCode(context.Background(), existing.MerchantID, existing.ID,
		&UpdatePickupCodeRequest{UsageLimit: intPtr(5)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateCode(context.Background(), existing.MerchantID, existing.ID,
		&UpdatePickupCodeRequest{UsageLimit: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, *updated.UsageLimit)
}

func TestUpdateCodeLeavesOmittedFieldsUntouched(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour)
	existing := fixtureCode(intPtr(10), &expiry)
	var written map[string]interface{}
	codeRepo := &stubCodeRepo{
		getForMerchantFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.PickupCode, error) {
			snapshot := *existing
			return &snapshot, nil
		},
		updateFn: func(_ context.Context, _ primitive.ObjectID, updates map[string]interface{}) error {
			written = updates
			return nil
		},
	}
	svc := NewPickupCodeService(codeRepo, &stubProductRepo{}, testLogger())

	// A patch that only toggles activity keeps the limit and expiry; there is
	// no way to clear either back to unbounded through this surface.
	updated, err := svc.UpdateCode(context.Background(), existing.MerchantID, existing.ID,
		&UpdatePickupCodeRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 10, *updated.UsageLimit)
	assert.Equal(t, expiry, *updated.ExpiresAt)
	assert.Equal(t, map[string]interface{}{"is_active": false}, written)
}

func TestDeleteCode(t *testing.T) {
	existing := fixtureCode(nil, nil)
	var deleted bool
	codeRepo := &stubCodeRepo{
		getForMerchantFn: func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.PickupCode, error) {
			return existing, nil
		},
		softDeleteFn: func(context.Context, primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	svc := NewPickupCodeService(codeRepo, &stubProductRepo{}, testLogger())

	require.NoError(t, svc.DeleteCode(context.Background(), existing.MerchantID, existing.ID))
	assert.True(t, deleted)
}
