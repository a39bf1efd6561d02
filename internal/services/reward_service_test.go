package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"pottypal/internal/models/db_models"
	"pottypal/internal/models/request_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

func newRewardService(db *gorm.DB) RewardServiceInterface {
	return NewRewardService(
		repositories.NewRewardRepository(db),
		repositories.NewChildRepository(db),
		realtime.NewHub(),
	)
}

func TestCreateReward(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active reward", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRewardService(db)

		resp, err := svc.CreateReward(ctx, account.ID.String(), child.ID.String(), request_models.CreateRewardRequest{
			Name:       "Sticker pack",
			PointsCost: 25,
			Icon:       "⭐",
		})
		if err != nil {
			t.Fatalf("CreateReward returned error: %v", err)
		}
		if !resp.IsActive {
			t.Error("expected a new reward to be active")
		}
		if resp.PointsCost != 25 {
			t.Errorf("expected cost 25, got %d", resp.PointsCost)
		}
	})

	t.Run("rejects a non-positive cost", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRewardService(db)

		_, err := svc.CreateReward(ctx, account.ID.String(), child.ID.String(), request_models.CreateRewardRequest{
			Name:       "Free hug",
			PointsCost: 0,
		})
		if err != utils.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestUpdateReward(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only the provided fields", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		reward := seedReward(t, db, child, 30, true)
		svc := newRewardService(db)

		newCost := 40
		resp, err := svc.UpdateReward(ctx, account.ID.String(), "", reward.ID.String(), request_models.UpdateRewardRequest{
			PointsCost: &newCost,
		})
		if err != nil {
			t.Fatalf("UpdateReward returned error: %v", err)
		}
		if resp.PointsCost != 40 {
			t.Errorf("expected cost 40, got %d", resp.PointsCost)
		}
		if resp.Name != reward.Name {
			t.Errorf("expected name untouched, got %q", resp.Name)
		}
	})

	t.Run("toggle flips availability", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		reward := seedReward(t, db, child, 30, true)
		svc := newRewardService(db)

		resp, err := svc.ToggleReward(ctx, account.ID.String(), "", reward.ID.String())
		if err != nil {
			t.Fatalf("ToggleReward returned error: %v", err)
		}
		if resp.IsActive {
			t.Error("expected reward to be inactive after toggle")
		}
	})

	t.Run("caregiver session for a sibling cannot manage the reward", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		sibling := seedChild(t, db, account, 0)
		reward := seedReward(t, db, child, 30, true)
		svc := newRewardService(db)

		newCost := 40
		if _, err := svc.UpdateReward(ctx, account.ID.String(), sibling.ID.String(), reward.ID.String(), request_models.UpdateRewardRequest{
			PointsCost: &newCost,
		}); err != utils.ErrCaregiverScope {
			t.Fatalf("expected ErrCaregiverScope from UpdateReward, got %v", err)
		}
		if _, err := svc.ToggleReward(ctx, account.ID.String(), sibling.ID.String(), reward.ID.String()); err != utils.ErrCaregiverScope {
			t.Fatalf("expected ErrCaregiverScope from ToggleReward, got %v", err)
		}
		if err := svc.DeleteReward(ctx, account.ID.String(), sibling.ID.String(), reward.ID.String()); err != utils.ErrCaregiverScope {
			t.Fatalf("expected ErrCaregiverScope from DeleteReward, got %v", err)
		}
		if _, err := svc.ToggleReward(ctx, account.ID.String(), child.ID.String(), reward.ID.String()); err != nil {
			t.Fatalf("ToggleReward for the session's own child returned error: %v", err)
		}
	})
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("sufficient balance yields a receipt and decrements", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 25)
		reward := seedReward(t, db, child, 25, true)
		svc := newRewardService(db)

		resp, err := svc.Redeem(ctx, account.ID.String(), reward.ID.String())
		if err != nil {
			t.Fatalf("Redeem returned error: %v", err)
		}
		if resp.PointsSpent != 25 {
			t.Errorf("expected receipt for 25 points, got %d", resp.PointsSpent)
		}
		if resp.RedeemedAt == 0 {
			t.Error("expected redeemed_at to be set")
		}
		if got := childBalance(t, db, child); got != 0 {
			t.Errorf("expected balance 0 after redemption, got %d", got)
		}

		var count int64
		if err := db.Model(&db_models.RedeemedReward{}).Where("child_id = ?", child.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count receipts: %v", err)
		}
		if count != 1 {
			t.Errorf("expected exactly 1 receipt, got %d", count)
		}
	})

	t.Run("insufficient balance changes nothing", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 20)
		reward := seedReward(t, db, child, 30, true)
		svc := newRewardService(db)

		if _, err := svc.Redeem(ctx, account.ID.String(), reward.ID.String()); err != utils.ErrInsufficientPoints {
			t.Fatalf("expected ErrInsufficientPoints, got %v", err)
		}
		if got := childBalance(t, db, child); got != 20 {
			t.Errorf("expected balance unchanged at 20, got %d", got)
		}

		var count int64
		if err := db.Model(&db_models.RedeemedReward{}).Where("child_id = ?", child.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count receipts: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no receipt on rejection, got %d", count)
		}
	})

	t.Run("inactive reward is rejected", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 100)
		reward := seedReward(t, db, child, 30, false)
		svc := newRewardService(db)

		if _, err := svc.Redeem(ctx, account.ID.String(), reward.ID.String()); err != utils.ErrRewardInactive {
			t.Fatalf("expected ErrRewardInactive, got %v", err)
		}
		if got := childBalance(t, db, child); got != 100 {
			t.Errorf("expected balance unchanged at 100, got %d", got)
		}
	})

	t.Run("receipt survives reward deletion", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 50)
		reward := seedReward(t, db, child, 50, true)
		svc := newRewardService(db)

		if _, err := svc.Redeem(ctx, account.ID.String(), reward.ID.String()); err != nil {
			t.Fatalf("Redeem returned error: %v", err)
		}
		if err := svc.DeleteReward(ctx, account.ID.String(), "", reward.ID.String()); err != nil {
			t.Fatalf("DeleteReward returned error: %v", err)
		}

		redemptions, err := svc.ListRedemptions(ctx, account.ID.String(), child.ID.String(), 1, 10)
		if err != nil {
			t.Fatalf("ListRedemptions returned error: %v", err)
		}
		if len(redemptions) != 1 {
			t.Fatalf("expected 1 redemption, got %d", len(redemptions))
		}
		if redemptions[0].Reward.Name != reward.Name {
			t.Errorf("expected receipt to keep reward name %q, got %q", reward.Name, redemptions[0].Reward.Name)
		}
	})
}

// Drives a full earn-and-spend sequence and checks that the balance
// always equals earned minus spent.
func TestBalanceConservation(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	account := seedAccount(t, db)
	child := seedChild(t, db, account, 0)
	requests := newRequestService(db, &mailRecorder{})
	rewards := newRewardService(db)

	earn := func(points int) {
		t.Helper()
		created, err := requests.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := requests.CompleteRequest(ctx, account.ID.String(), "", created.ID, &points, "Mom"); err != nil {
			t.Fatalf("CompleteRequest returned error: %v", err)
		}
	}

	earn(10)
	if got := childBalance(t, db, child); got != 10 {
		t.Fatalf("expected balance 10, got %d", got)
	}

	earn(15)
	if got := childBalance(t, db, child); got != 25 {
		t.Fatalf("expected balance 25, got %d", got)
	}

	reward := seedReward(t, db, child, 25, true)
	receipt, err := rewards.Redeem(ctx, account.ID.String(), reward.ID.String())
	if err != nil {
		t.Fatalf("Redeem returned error: %v", err)
	}
	if receipt.PointsSpent != 25 {
		t.Fatalf("expected receipt for 25 points, got %d", receipt.PointsSpent)
	}
	if got := childBalance(t, db, child); got != 0 {
		t.Fatalf("expected balance 0, got %d", got)
	}

	// One more earn interleaved with a rejected redemption.
	earn(5)
	if _, err := rewards.Redeem(ctx, account.ID.String(), reward.ID.String()); err != utils.ErrInsufficientPoints {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
	if got := childBalance(t, db, child); got != 5 {
		t.Fatalf("expected balance 5 after rejected redemption, got %d", got)
	}
}
