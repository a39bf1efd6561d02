package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"pottypal/internal/models/db_models"
	"pottypal/internal/repositories"
	"pottypal/pkg/realtime"
	"pottypal/pkg/utils"
)

func newRequestService(db *gorm.DB, mail IMailService) RequestServiceInterface {
	return NewRequestService(
		repositories.NewRequestRepository(db),
		repositories.NewChildRepository(db),
		repositories.NewCaregiverRepository(db),
		mail,
		realtime.NewHub(),
	)
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		resp, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if resp.Status != "pending" {
			t.Errorf("expected status pending, got %q", resp.Status)
		}
		if resp.RequestType != "pee" {
			t.Errorf("expected request type pee, got %q", resp.RequestType)
		}
		if resp.PointsAwarded != 0 {
			t.Errorf("expected no points on a pending request, got %d", resp.PointsAwarded)
		}
	})

	t.Run("rejects a second pending request for the same child", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		if _, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee"); err != nil {
			t.Fatalf("first CreateRequest returned error: %v", err)
		}
		if _, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "poop"); err != utils.ErrPendingRequestExists {
			t.Fatalf("expected ErrPendingRequestExists, got %v", err)
		}
	})

	t.Run("allows a new request after the previous one is resolved", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		first, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := svc.CancelRequest(ctx, account.ID.String(), "", first.ID); err != nil {
			t.Fatalf("CancelRequest returned error: %v", err)
		}
		if _, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "poop"); err != nil {
			t.Fatalf("CreateRequest after cancel returned error: %v", err)
		}
	})

	t.Run("rejects an unknown request type", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		if _, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "snack"); err != utils.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects a child owned by another account", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		other := &db_models.Account{Name: "Other", Email: "other@example.com", PasswordHash: "x"}
		if err := db.Create(other).Error; err != nil {
			t.Fatalf("failed to seed second account: %v", err)
		}
		svc := newRequestService(db, &mailRecorder{})

		if _, err := svc.CreateRequest(ctx, other.ID.String(), child.ID.String(), "pee"); err != utils.ErrNotOwner {
			t.Fatalf("expected ErrNotOwner, got %v", err)
		}
	})

	t.Run("notifies caregivers opted into new requests", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		seedCaregiver(t, db, child, "grandma@example.com", []string{db_models.NotifTypeNewRequest})
		mail := &mailRecorder{}
		svc := newRequestService(db, mail)

		if _, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee"); err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		deadline := time.Now().Add(2 * time.Second)
		for {
			mail.mu.Lock()
			n := len(mail.notifications)
			mail.mu.Unlock()
			if n == 1 {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("expected 1 caregiver notification, got %d", n)
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
}

func TestCompleteRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("awards points and marks the request completed", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 5)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "poop")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}

		points := 15
		resp, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, &points, "Grandma")
		if err != nil {
			t.Fatalf("CompleteRequest returned error: %v", err)
		}
		if resp.Status != "completed" {
			t.Errorf("expected status completed, got %q", resp.Status)
		}
		if resp.PointsAwarded != 15 {
			t.Errorf("expected 15 points awarded, got %d", resp.PointsAwarded)
		}
		if resp.CompletedBy == nil || *resp.CompletedBy != "Grandma" {
			t.Errorf("expected completed_by Grandma, got %v", resp.CompletedBy)
		}
		if resp.CompletedAt == nil {
			t.Error("expected completed_at to be set")
		}
		if got := childBalance(t, db, child); got != 20 {
			t.Errorf("expected balance 20, got %d", got)
		}
	})

	t.Run("defaults the award when no points are given", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		resp, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, nil, "Mom")
		if err != nil {
			t.Fatalf("CompleteRequest returned error: %v", err)
		}
		if resp.PointsAwarded != defaultPointsAward {
			t.Errorf("expected default award %d, got %d", defaultPointsAward, resp.PointsAwarded)
		}
		if got := childBalance(t, db, child); got != defaultPointsAward {
			t.Errorf("expected balance %d, got %d", defaultPointsAward, got)
		}
	})

	t.Run("rejects a negative award", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		points := -5
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, &points, "Mom"); err != utils.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if got := childBalance(t, db, child); got != 0 {
			t.Errorf("expected balance unchanged at 0, got %d", got)
		}
	})

	t.Run("completing twice awards exactly once", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		points := 10
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, &points, "Mom"); err != nil {
			t.Fatalf("first CompleteRequest returned error: %v", err)
		}
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, &points, "Dad"); err != utils.ErrRequestAlreadyResolved {
			t.Fatalf("expected ErrRequestAlreadyResolved, got %v", err)
		}
		if got := childBalance(t, db, child); got != 10 {
			t.Errorf("expected a single award of 10, got balance %d", got)
		}
	})

	t.Run("cannot complete a cancelled request", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := svc.CancelRequest(ctx, account.ID.String(), "", created.ID); err != nil {
			t.Fatalf("CancelRequest returned error: %v", err)
		}
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, nil, "Mom"); err != utils.ErrRequestAlreadyResolved {
			t.Fatalf("expected ErrRequestAlreadyResolved, got %v", err)
		}
		if got := childBalance(t, db, child); got != 0 {
			t.Errorf("expected no award on a cancelled request, got balance %d", got)
		}
	})

	t.Run("caregiver session for a sibling cannot complete", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		sibling := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), sibling.ID.String(), created.ID, nil, "Mom"); err != utils.ErrCaregiverScope {
			t.Fatalf("expected ErrCaregiverScope, got %v", err)
		}
		if got := childBalance(t, db, child); got != 0 {
			t.Errorf("expected balance unchanged at 0, got %d", got)
		}
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), child.ID.String(), created.ID, nil, "Mom"); err != nil {
			t.Fatalf("CompleteRequest for the session's own child returned error: %v", err)
		}
	})

	t.Run("unknown request id", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", "7b8a35ce-6a54-4a1c-9d7e-1e8f66b9ab1d", nil, "Mom"); err != utils.ErrRequestNotFound {
			t.Fatalf("expected ErrRequestNotFound, got %v", err)
		}
	})
}

func TestCancelRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels without touching the balance", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 30)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		resp, err := svc.CancelRequest(ctx, account.ID.String(), "", created.ID)
		if err != nil {
			t.Fatalf("CancelRequest returned error: %v", err)
		}
		if resp.Status != "cancelled" {
			t.Errorf("expected status cancelled, got %q", resp.Status)
		}
		if resp.PointsAwarded != 0 {
			t.Errorf("expected no points on cancel, got %d", resp.PointsAwarded)
		}
		if got := childBalance(t, db, child); got != 30 {
			t.Errorf("expected balance unchanged at 30, got %d", got)
		}
	})

	t.Run("cancelling a completed request is rejected", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := svc.CompleteRequest(ctx, account.ID.String(), "", created.ID, nil, "Mom"); err != nil {
			t.Fatalf("CompleteRequest returned error: %v", err)
		}
		if _, err := svc.CancelRequest(ctx, account.ID.String(), "", created.ID); err != utils.ErrRequestAlreadyResolved {
			t.Fatalf("expected ErrRequestAlreadyResolved, got %v", err)
		}
		if got := childBalance(t, db, child); got != defaultPointsAward {
			t.Errorf("expected award preserved at %d, got %d", defaultPointsAward, got)
		}
	})

	t.Run("caregiver session for a sibling cannot cancel", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		sibling := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		if _, err := svc.CancelRequest(ctx, account.ID.String(), sibling.ID.String(), created.ID); err != utils.ErrCaregiverScope {
			t.Fatalf("expected ErrCaregiverScope, got %v", err)
		}
		pending, err := svc.GetPendingRequest(ctx, account.ID.String(), child.ID.String())
		if err != nil {
			t.Fatalf("GetPendingRequest returned error: %v", err)
		}
		if pending == nil {
			t.Fatal("expected the request to still be pending")
		}
	})
}

func TestGetPendingRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil when nothing is pending", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		resp, err := svc.GetPendingRequest(ctx, account.ID.String(), child.ID.String())
		if err != nil {
			t.Fatalf("GetPendingRequest returned error: %v", err)
		}
		if resp != nil {
			t.Fatalf("expected no pending request, got %+v", resp)
		}
	})

	t.Run("returns the open request", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "poop")
		if err != nil {
			t.Fatalf("CreateRequest returned error: %v", err)
		}
		resp, err := svc.GetPendingRequest(ctx, account.ID.String(), child.ID.String())
		if err != nil {
			t.Fatalf("GetPendingRequest returned error: %v", err)
		}
		if resp == nil || resp.ID != created.ID {
			t.Fatalf("expected pending request %s, got %+v", created.ID, resp)
		}
	})
}

func TestListRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first with paging", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		var ids []string
		for i := 0; i < 3; i++ {
			created, err := svc.CreateRequest(ctx, account.ID.String(), child.ID.String(), "pee")
			if err != nil {
				t.Fatalf("CreateRequest %d returned error: %v", i, err)
			}
			if _, err := svc.CancelRequest(ctx, account.ID.String(), "", created.ID); err != nil {
				t.Fatalf("CancelRequest %d returned error: %v", i, err)
			}
			ids = append(ids, created.ID)
		}

		page, err := svc.ListRequests(ctx, account.ID.String(), child.ID.String(), 1, 2)
		if err != nil {
			t.Fatalf("ListRequests returned error: %v", err)
		}
		if len(page) != 2 {
			t.Fatalf("expected 2 requests on page 1, got %d", len(page))
		}

		rest, err := svc.ListRequests(ctx, account.ID.String(), child.ID.String(), 2, 2)
		if err != nil {
			t.Fatalf("ListRequests page 2 returned error: %v", err)
		}
		if len(rest) != 1 {
			t.Fatalf("expected 1 request on page 2, got %d", len(rest))
		}

		seen := map[string]bool{}
		for _, r := range append(page, rest...) {
			seen[r.ID] = true
		}
		for _, id := range ids {
			if !seen[id] {
				t.Errorf("request %s missing from paged listing", id)
			}
		}
	})

	t.Run("rejects bad paging", func(t *testing.T) {
		db := newTestDB(t)
		account := seedAccount(t, db)
		child := seedChild(t, db, account, 0)
		svc := newRequestService(db, &mailRecorder{})

		if _, err := svc.ListRequests(ctx, account.ID.String(), child.ID.String(), 0, 10); err != utils.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for page 0, got %v", err)
		}
		if _, err := svc.ListRequests(ctx, account.ID.String(), child.ID.String(), 1, 101); err != utils.ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for oversized page, got %v", err)
		}
	})
}
