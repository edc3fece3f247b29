package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/appservers/customer-api/internal/core/domain"
	"github.com/appservers/customer-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository that mirrors the storage
// contract: unique email, newest-first listing, not-found on absent ids.
type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	clock  time.Time
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: map[int64]*domain.User{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubUserRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	u.ID = r.nextID
	now := r.tick()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	matched := make([]*domain.User, 0, len(r.users))
	term := strings.ToLower(f.Search)
	for _, u := range r.users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Name), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		cp := *u
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, f ports.UpdateUserFields) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if f.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *f.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		u.Email = *f.Email
	}
	if f.Name != nil {
		u.Name = *f.Name
	}
	if f.Age != nil {
		u.Age = f.Age
	}
	if f.Phone != nil {
		u.Phone = f.Phone
	}
	if f.IsActive != nil {
		u.IsActive = *f.IsActive
	}
	u.UpdatedAt = r.tick()
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewUserService(repo, zerolog.Nop()), repo
}

func TestCreateUserNormalizesInput(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:  "  Ana García  ",
		Email: " ANA@Test.com ",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if u.Name != "Ana García" {
		t.Errorf("Name = %q, want trimmed %q", u.Name, "Ana García")
	}
	if u.Email != "ana@test.com" {
		t.Errorf("Email = %q, want normalized %q", u.Email, "ana@test.com")
	}
	if !u.IsActive {
		t.Error("new users must start active")
	}
	if u.ID == 0 {
		t.Error("ID was not assigned")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("timestamps were not assigned")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "Ana", Email: "ana@test.com"}); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}

	// Same address differing only in case and whitespace.
	_, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "Other", Email: "  ANA@TEST.COM "})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("CreateUser duplicate = %v, want ErrDuplicateEmail", err)
	}
}

func TestGetUserByEmailNormalizesLookup(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "Ana", Email: "ana@test.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := svc.GetUserByEmail(ctx, " ANA@Test.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("GetUserByEmail returned id %d, want %d", u.ID, created.ID)
	}
}

func TestListUsersPagination(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := svc.CreateUser(ctx, ports.CreateUserInput{
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@test.com", i),
		})
		if err != nil {
			t.Fatalf("CreateUser %d: %v", i, err)
		}
	}

	result, err := svc.ListUsers(ctx, ports.ListUsersInput{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	if result.Total != 25 {
		t.Errorf("Total = %d, want 25", result.Total)
	}
	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", result.TotalPages)
	}
	if len(result.Items) != 10 {
		t.Fatalf("len(Items) = %d, want 10", len(result.Items))
	}
	// Newest first: page 2 starts at the 15th-created user.
	if result.Items[0].Name != "User 15" {
		t.Errorf("Items[0].Name = %q, want %q", result.Items[0].Name, "User 15")
	}
	for i := 1; i < len(result.Items); i++ {
		if result.Items[i].CreatedAt.After(result.Items[i-1].CreatedAt) {
			t.Errorf("Items not ordered newest first at index %d", i)
		}
	}
}

func TestListUsersClampsBounds(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name      string
		input     ports.ListUsersInput
		wantPage  int
		wantLimit int
	}{
		{"zero values fall back to defaults", ports.ListUsersInput{}, 1, 10},
		{"negative page", ports.ListUsersInput{Page: -3, Limit: 5}, 1, 5},
		{"limit capped", ports.ListUsersInput{Page: 1, Limit: 1000}, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ListUsers(ctx, tt.input)
			if err != nil {
				t.Fatalf("ListUsers: %v", err)
			}
			if result.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", result.Page, tt.wantPage)
			}
			if result.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", result.Limit, tt.wantLimit)
			}
		})
	}
}

func TestListUsersEmptyResult(t *testing.T) {
	svc, _ := newTestService()

	result, err := svc.ListUsers(context.Background(), ports.ListUsersInput{})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if result.Total != 0 || result.TotalPages != 0 {
		t.Errorf("Total = %d, TotalPages = %d, want 0 and 0", result.Total, result.TotalPages)
	}
	if len(result.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(result.Items))
	}
}

func TestListUsersSearch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	seed := []ports.CreateUserInput{
		{Name: "Ana García", Email: "ana@test.com"},
		{Name: "Bruno Díaz", Email: "bruno@example.com"},
		{Name: "Carla Ríos", Email: "carla.garcia@test.com"},
	}
	for _, in := range seed {
		if _, err := svc.CreateUser(ctx, in); err != nil {
			t.Fatalf("CreateUser %q: %v", in.Email, err)
		}
	}

	// Matches "Ana García" by name and "carla.garcia@..." by email.
	result, err := svc.ListUsers(ctx, ports.ListUsersInput{Search: "GARC"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("Total = %d, want 2", result.Total)
	}
}

func TestUpdateUserPartialFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	age := 30
	created, err := svc.CreateUser(ctx, ports.CreateUserInput{
		Name:  "Ana",
		Email: "ana@test.com",
		Age:   &age,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	newEmail := " ANA.NEW@Test.com "
	updated, err := svc.UpdateUser(ctx, created.ID, ports.UpdateUserInput{Email: &newEmail})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if updated.Email != "ana.new@test.com" {
		t.Errorf("Email = %q, want normalized %q", updated.Email, "ana.new@test.com")
	}
	if updated.Name != "Ana" {
		t.Errorf("Name changed to %q, untouched fields must survive", updated.Name)
	}
	if updated.Age == nil || *updated.Age != 30 {
		t.Error("Age changed, untouched fields must survive")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("UpdatedAt was not refreshed")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt must never change on update")
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _ := newTestService()

	name := "Ghost"
	_, err := svc.UpdateUser(context.Background(), 999, ports.UpdateUserInput{Name: &name})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("UpdateUser = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUserTwice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, ports.CreateUserInput{Name: "Ana", Email: "ana@test.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := svc.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("first DeleteUser: %v", err)
	}
	if err := svc.DeleteUser(ctx, created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second DeleteUser = %v, want ErrUserNotFound", err)
	}
}
