package riders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"parcel-delivery/internal/models"
)

// fakeRepo mimics the rider store plus the transactional role grant.
type fakeRepo struct {
	riders    map[string]*models.Rider
	userRoles map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		riders:    make(map[string]*models.Rider),
		userRoles: make(map[string]string),
	}
}

func (f *fakeRepo) Create(ctx context.Context, req models.CreateRiderRequest) (*models.Rider, error) {
	rd := &models.Rider{
		ID:        fmt.Sprintf("rider-%d", len(f.riders)+1),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Region:    req.Region,
		District:  req.District,
		Status:    models.RiderStatusPending,
		CreatedAt: time.Now(),
	}
	f.riders[rd.ID] = rd
	cp := *rd
	return &cp, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status string) ([]*models.Rider, error) {
	out := []*models.Rider{}
	for _, rd := range f.riders {
		if rd.Status == status {
			cp := *rd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailable(ctx context.Context, district string) ([]*models.Rider, error) {
	out := []*models.Rider{}
	for _, rd := range f.riders {
		if rd.Status == models.RiderStatusActive && rd.District == district {
			cp := *rd
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, riderID string, status string, grantRiderRole bool) (*models.Rider, error) {
	rd, ok := f.riders[riderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	rd.Status = status
	if grantRiderRole {
		if _, ok := f.userRoles[rd.Email]; ok {
			f.userRoles[rd.Email] = models.RoleRider
		}
	}
	cp := *rd
	return &cp, nil
}

// fakeNotifier records approval mails and can be told to fail.
type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendRiderApproved(ctx context.Context, to string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func application(email, district string) models.CreateRiderRequest {
	return models.CreateRiderRequest{
		Name:     "R",
		Email:    email,
		Phone:    "01700000000",
		Region:   "Dhaka",
		District: district,
	}
}

func TestCreateRiderStartsPending(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})

	rd, err := svc.CreateRider(context.Background(), application("r@x.com", "Gazipur"))
	if err != nil {
		t.Fatalf("CreateRider: %v", err)
	}
	if rd.Status != models.RiderStatusPending {
		t.Errorf("status = %q, want pending", rd.Status)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := newFakeRepo()
	rd, _ := repo.Create(context.Background(), application("r@x.com", "Gazipur"))
	svc := NewService(repo, &fakeNotifier{})

	for _, status := range []string{"pending", "approved", ""} {
		if _, err := svc.UpdateStatus(context.Background(), rd.ID, status); !errors.Is(err, models.ErrInvalidStatus) {
			t.Errorf("status %q: err = %v, want ErrInvalidStatus", status, err)
		}
	}
	if repo.riders[rd.ID].Status != models.RiderStatusPending {
		t.Error("rider mutated despite invalid status")
	}
}

func TestActivationGrantsRiderRoleAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	repo.userRoles["r@x.com"] = models.RoleUser
	rd, _ := repo.Create(context.Background(), application("r@x.com", "Gazipur"))
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	res, err := svc.UpdateStatus(context.Background(), rd.ID, models.RiderStatusActive)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !res.Success || res.ModifiedCount != 1 {
		t.Errorf("response = %+v", res)
	}
	if repo.userRoles["r@x.com"] != models.RoleRider {
		t.Errorf("linked user role = %q, want rider", repo.userRoles["r@x.com"])
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "r@x.com" {
		t.Errorf("approval mail sent to %v, want [r@x.com]", notifier.sent)
	}
}

func TestActivationTwiceIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.userRoles["r@x.com"] = models.RoleUser
	rd, _ := repo.Create(context.Background(), application("r@x.com", "Gazipur"))
	svc := NewService(repo, &fakeNotifier{})
	ctx := context.Background()

	if _, err := svc.UpdateStatus(ctx, rd.ID, models.RiderStatusActive); err != nil {
		t.Fatalf("first activation: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, rd.ID, models.RiderStatusActive); err != nil {
		t.Fatalf("repeated activation: %v", err)
	}
	if repo.riders[rd.ID].Status != models.RiderStatusActive {
		t.Errorf("status = %q, want active", repo.riders[rd.ID].Status)
	}
	if repo.userRoles["r@x.com"] != models.RoleRider {
		t.Errorf("role = %q, want rider", repo.userRoles["r@x.com"])
	}
}

func TestActivationSurvivesMailFailure(t *testing.T) {
	repo := newFakeRepo()
	rd, _ := repo.Create(context.Background(), application("r@x.com", "Gazipur"))
	svc := NewService(repo, &fakeNotifier{err: errors.New("ses throttled")})

	res, err := svc.UpdateStatus(context.Background(), rd.ID, models.RiderStatusActive)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !res.Success {
		t.Error("activation failed because of the mail")
	}
}

func TestCancellationDoesNotNotify(t *testing.T) {
	repo := newFakeRepo()
	rd, _ := repo.Create(context.Background(), application("r@x.com", "Gazipur"))
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	if _, err := svc.UpdateStatus(context.Background(), rd.ID, models.RiderStatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Errorf("cancellation sent %d mails", len(notifier.sent))
	}
}

func TestListAvailableByDistrict(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	a, _ := repo.Create(ctx, application("a@x.com", "Gazipur"))
	b, _ := repo.Create(ctx, application("b@x.com", "Gazipur"))
	if _, err := repo.Create(ctx, application("c@x.com", "Comilla")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(repo, &fakeNotifier{})
	if _, err := svc.UpdateStatus(ctx, a.ID, models.RiderStatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	_ = b // stays pending

	got, err := svc.ListAvailable(ctx, "Gazipur")
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("available riders = %+v, want only the activated Gazipur rider", got)
	}
}

func TestListAvailableWithoutDistrictListsAllActive(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()
	a, _ := repo.Create(ctx, application("a@x.com", "Gazipur"))
	b, _ := repo.Create(ctx, application("b@x.com", "Comilla"))
	if _, err := repo.Create(ctx, application("c@x.com", "Comilla")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewService(repo, &fakeNotifier{})
	if _, err := svc.UpdateStatus(ctx, a.ID, models.RiderStatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, b.ID, models.RiderStatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}

	got, err := svc.ListAvailable(ctx, "")
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d riders, want both active riders across districts", len(got))
	}
	for _, rd := range got {
		if rd.Status != models.RiderStatusActive {
			t.Errorf("rider %s status = %q, want active", rd.ID, rd.Status)
		}
	}
}
