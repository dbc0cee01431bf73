package rpcjson

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/S-h-i-v-a-y/assignment/internal/application"
	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type memPresenceRepo struct {
	hours    map[int64]domain.OperatingHours
	checkIns int
}

func (m *memPresenceRepo) CreatePerson(_ context.Context, p domain.Person) (domain.Person, error) {
	return p, nil
}

func (m *memPresenceRepo) CreateOrganization(_ context.Context, id int64) (domain.Organization, error) {
	return domain.Organization{ID: id}, nil
}

func (m *memPresenceRepo) CheckIn(_ context.Context, userID, orgID int64) (bool, error) {
	if _, ok := m.hours[orgID]; !ok {
		return false, nil
	}
	m.checkIns++
	return true, nil
}

func (m *memPresenceRepo) ActiveUsersByRole(_ context.Context, _ *int64) ([]domain.RoleGroup, error) {
	return nil, nil
}

func (m *memPresenceRepo) CheckoutNonAdmin(_ context.Context, _ int64) (int, error) { return 0, nil }
func (m *memPresenceRepo) CheckoutAdmin(_ context.Context, _ int64) (int, error)    { return 0, nil }

func (m *memPresenceRepo) SetHours(_ context.Context, orgID int64, opening, closing string) error {
	m.hours[orgID] = domain.OperatingHours{Opening: opening, Closing: closing}
	return nil
}

func (m *memPresenceRepo) OrganizationHours(_ context.Context, orgID int64) (domain.OperatingHours, error) {
	h, ok := m.hours[orgID]
	if !ok {
		return domain.OperatingHours{}, domain.ErrNotFound
	}
	return h, nil
}

type memSocialRepo struct {
	users map[string]domain.SocialUser
}

func (m *memSocialRepo) CreateUser(_ context.Context, u domain.SocialUser) (domain.SocialUser, error) {
	m.users[u.ID] = u
	return u, nil
}

func (m *memSocialRepo) ListUsers(_ context.Context) ([]domain.SocialUser, error) {
	out := make([]domain.SocialUser, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memSocialRepo) GetUser(_ context.Context, id string) (domain.SocialUser, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.SocialUser{}, domain.ErrNotFound
	}
	return u, nil
}

func (m *memSocialRepo) UpdateUser(_ context.Context, id string, _ domain.SocialUserUpdate) (domain.SocialUser, error) {
	return m.GetUser(context.Background(), id)
}

func (m *memSocialRepo) DeleteUser(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memSocialRepo) CreatePost(_ context.Context, p domain.Post) (domain.Post, error) {
	return p, nil
}

func (m *memSocialRepo) Follow(_ context.Context, _, _ string) error { return nil }
func (m *memSocialRepo) Like(_ context.Context, _, _ string) error   { return nil }

func (m *memSocialRepo) Followers(_ context.Context, _ string) ([]domain.SocialUser, error) {
	return nil, nil
}

func (m *memSocialRepo) Following(_ context.Context, _ string) ([]domain.SocialUser, error) {
	return nil, nil
}

func (m *memSocialRepo) Likes(_ context.Context, _ string) ([]domain.SocialUser, error) {
	return nil, nil
}

type memRelationshipRepo struct{}

func (memRelationshipRepo) Create(_ context.Context, _ domain.Relationship) (string, error) {
	return "rel-1", nil
}

func (memRelationshipRepo) Delete(_ context.Context, _ domain.Relationship) (int, error) {
	return 1, nil
}

type memDirectoryRepo struct{}

func (memDirectoryRepo) CreateUser(_ context.Context, u domain.DirectoryUser) (domain.DirectoryUser, error) {
	u.ID = 1
	return u, nil
}

func (memDirectoryRepo) ListUsers(_ context.Context, _, _ int) ([]domain.DirectoryUser, error) {
	return nil, nil
}

func (memDirectoryRepo) GetUser(_ context.Context, _ uint) (domain.DirectoryUser, error) {
	return domain.DirectoryUser{}, domain.ErrNotFound
}

func (memDirectoryRepo) UpdateUser(_ context.Context, _ uint, _ domain.DirectoryUserUpdate) (domain.DirectoryUser, error) {
	return domain.DirectoryUser{}, domain.ErrNotFound
}

func (memDirectoryRepo) DeleteUser(_ context.Context, _ uint) error { return domain.ErrNotFound }

func startTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rpc.sock")
	srv, err := Start(
		path,
		application.NewPresenceService(&memPresenceRepo{hours: map[int64]domain.OperatingHours{}}),
		application.NewSocialService(&memSocialRepo{users: map[string]domain.SocialUser{}}),
		application.NewRelationshipService(memRelationshipRepo{}),
		application.NewDirectoryService(memDirectoryRepo{}),
	)
	if err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	return srv, path
}

func call(t *testing.T, enc *json.Encoder, dec *json.Decoder, method string, params any) response {
	t.Helper()
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	if err := enc.Encode(request{JSONRPC: "2.0", Method: method, Params: raw, ID: 1}); err != nil {
		t.Fatalf("send %s: %v", method, err)
	}
	var resp response
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode %s response: %v", method, err)
	}
	return resp
}

func TestServerRoundTrip(t *testing.T) {
	_, path := startTestServer(t)

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	resp := call(t, enc, dec, "users.create", map[string]any{"name": "alice", "email": "a@example.com"})
	if resp.Error != nil {
		t.Fatalf("users.create error: %+v", resp.Error)
	}
	user, ok := resp.Result.(map[string]any)
	if !ok || user["id"] == "" {
		t.Fatalf("expected created user with id, got %v", resp.Result)
	}

	resp = call(t, enc, dec, "users.get", map[string]any{"id": "missing"})
	if resp.Error == nil || resp.Error.Code != 40400 {
		t.Fatalf("expected 40400 for missing user, got %+v", resp.Error)
	}

	resp = call(t, enc, dec, "relations.create", map[string]any{
		"source_id": "a", "target_id": "b", "relationship_type": "KNOWS",
	})
	if resp.Error != nil {
		t.Fatalf("relations.create error: %+v", resp.Error)
	}
	rel, ok := resp.Result.(map[string]any)
	if !ok || rel["relationship_id"] != "rel-1" {
		t.Fatalf("unexpected relations.create result: %v", resp.Result)
	}

	resp = call(t, enc, dec, "relations.create", map[string]any{
		"source_id": "a", "target_id": "b", "relationship_type": "KNOWS]->() DETACH DELETE",
	})
	if resp.Error == nil || resp.Error.Code != 40000 {
		t.Fatalf("expected 40000 for risky type, got %+v", resp.Error)
	}
}

func TestServerGatedCheckIn(t *testing.T) {
	_, path := startTestServer(t)

	conn, err := net.Dial("unix", path)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = conn.Close() }()
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)

	resp := call(t, enc, dec, "org.checkin", map[string]any{"user_id": 1, "org_id": 7})
	if resp.Error == nil || resp.Error.Code != 40400 {
		t.Fatalf("expected 40400 before hours exist, got %+v", resp.Error)
	}

	resp = call(t, enc, dec, "org.set-times", map[string]any{
		"org_id": 7, "opening_time": "00:00", "closing_time": "23:59",
	})
	if resp.Error != nil {
		t.Fatalf("org.set-times error: %+v", resp.Error)
	}

	resp = call(t, enc, dec, "org.checkin", map[string]any{"user_id": 1, "org_id": 7})
	if resp.Error != nil {
		t.Fatalf("org.checkin error: %+v", resp.Error)
	}

	resp = call(t, enc, dec, "nope.method", map[string]any{})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("expected method not found, got %+v", resp.Error)
	}
}
