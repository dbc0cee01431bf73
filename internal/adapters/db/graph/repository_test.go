package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type fakeClient struct {
	result     Result
	err        error
	lastCypher string
	lastParams map[string]any
	calls      int
}

func (f *fakeClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	f.calls++
	f.lastCypher, f.lastParams = cypher, params
	return f.result, f.err
}

func (f *fakeClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	f.calls++
	f.lastCypher, f.lastParams = cypher, params
	return f.result, f.err
}

func (f *fakeClient) VerifyConnectivity(context.Context) error { return nil }
func (f *fakeClient) Close(context.Context) error              { return nil }

func TestCheckInReportsMatch(t *testing.T) {
	client := &fakeClient{result: Result{Records: []Record{{"r": nil}}}}
	repo := NewPresenceRepository(client)

	matched, err := repo.CheckIn(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}
	if !strings.Contains(client.lastCypher, "MERGE (u)-[r:CHECKED_IN]->(o)") {
		t.Fatalf("unexpected cypher: %s", client.lastCypher)
	}
	if client.lastParams["user_id"] != int64(1) || client.lastParams["org_id"] != int64(10) {
		t.Fatalf("unexpected params: %v", client.lastParams)
	}

	client.result = Result{}
	matched, err = repo.CheckIn(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if matched {
		t.Fatal("expected no match for missing endpoints")
	}
}

func TestActiveUsersByRoleGrouping(t *testing.T) {
	client := &fakeClient{result: Result{Records: []Record{
		{"role": "admin", "users": []any{map[string]any{"id": int64(2), "name": "bo"}}},
		{"role": "member", "users": []any{
			map[string]any{"id": int64(1), "name": "ana"},
			map[string]any{"id": int64(3), "name": "cy"},
		}},
	}}}
	repo := NewPresenceRepository(client)

	groups, err := repo.ActiveUsersByRole(context.Background(), nil)
	if err != nil {
		t.Fatalf("ActiveUsersByRole: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[1].Role != "member" || len(groups[1].Users) != 2 {
		t.Fatalf("unexpected member group: %+v", groups[1])
	}
	if groups[1].Users[0].ID != 1 || groups[1].Users[0].Name != "ana" {
		t.Fatalf("unexpected member: %+v", groups[1].Users[0])
	}

	orgID := int64(10)
	if _, err := repo.ActiveUsersByRole(context.Background(), &orgID); err != nil {
		t.Fatalf("scoped ActiveUsersByRole: %v", err)
	}
	if client.lastParams["org_id"] != int64(10) {
		t.Fatalf("scope param missing: %v", client.lastParams)
	}
}

func TestCheckoutCountsFromSummary(t *testing.T) {
	client := &fakeClient{result: Result{Counters: Counters{RelationshipsDeleted: 3}}}
	repo := NewPresenceRepository(client)

	removed, err := repo.CheckoutNonAdmin(context.Background(), 10)
	if err != nil {
		t.Fatalf("CheckoutNonAdmin: %v", err)
	}
	if removed != 3 {
		t.Fatalf("got %d removed, want 3", removed)
	}
	if !strings.Contains(client.lastCypher, "u.role <> 'admin'") {
		t.Fatalf("admin filter missing: %s", client.lastCypher)
	}

	client.result = Result{}
	removed, err = repo.CheckoutAdmin(context.Background(), 10)
	if err != nil {
		t.Fatalf("CheckoutAdmin: %v", err)
	}
	if removed != 0 {
		t.Fatalf("got %d removed, want 0", removed)
	}
}

func TestOrganizationHours(t *testing.T) {
	client := &fakeClient{result: Result{Records: []Record{{"opening": "09:00", "closing": nil}}}}
	repo := NewPresenceRepository(client)

	hours, err := repo.OrganizationHours(context.Background(), 10)
	if err != nil {
		t.Fatalf("OrganizationHours: %v", err)
	}
	if hours.Opening != "09:00" || hours.Closing != "" {
		t.Fatalf("unexpected hours: %+v", hours)
	}

	client.result = Result{}
	if _, err := repo.OrganizationHours(context.Background(), 11); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestStoreErrorsStayOpaque(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused: bolt://secret-host:7687")}
	repo := NewPresenceRepository(client)

	_, err := repo.CheckIn(context.Background(), 1, 10)
	if !domain.IsStore(err) {
		t.Fatalf("got %v, want StoreError", err)
	}
	if strings.Contains(err.Error(), "secret-host") {
		t.Fatalf("cause leaked into message: %s", err.Error())
	}
}

func TestUpdateUserBuildsPartialSet(t *testing.T) {
	client := &fakeClient{result: Result{Records: []Record{
		{"id": "u-1", "name": "ana maria", "email": "a@b.c", "age": int64(30), "gender": "f"},
	}}}
	repo := NewSocialRepository(client)

	name := "ana maria"
	age := int64(30)
	got, err := repo.UpdateUser(context.Background(), "u-1", domain.SocialUserUpdate{Name: &name, Age: &age})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Name != "ana maria" || got.Age != 30 {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !strings.Contains(client.lastCypher, "u.name = $name, u.age = $age") {
		t.Fatalf("unexpected SET clause: %s", client.lastCypher)
	}
	if strings.Contains(client.lastCypher, "$email") || strings.Contains(client.lastCypher, "$gender") {
		t.Fatalf("untouched fields in SET clause: %s", client.lastCypher)
	}

	client.result = Result{}
	if _, err := repo.UpdateUser(context.Background(), "u-9", domain.SocialUserUpdate{Name: &name}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteUserUsesNodeCounter(t *testing.T) {
	client := &fakeClient{result: Result{Counters: Counters{NodesDeleted: 1}}}
	repo := NewSocialRepository(client)

	if err := repo.DeleteUser(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !strings.Contains(client.lastCypher, "DETACH DELETE u") {
		t.Fatalf("unexpected cypher: %s", client.lastCypher)
	}

	client.result = Result{}
	if err := repo.DeleteUser(context.Background(), "u-9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRelationshipCreate(t *testing.T) {
	client := &fakeClient{result: Result{Records: []Record{{"relationship_id": "5:abc:12"}}}}
	repo := NewRelationshipRepository(client)

	id, err := repo.Create(context.Background(), domain.Relationship{SourceID: "u-1", TargetID: int64(4), Type: "KNOWS"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "5:abc:12" {
		t.Fatalf("got id %q", id)
	}
	if !strings.Contains(client.lastCypher, "[r:KNOWS]") {
		t.Fatalf("type not spliced: %s", client.lastCypher)
	}
	if client.lastParams["source_id"] != "u-1" || client.lastParams["target_id"] != int64(4) {
		t.Fatalf("ids not bound: %v", client.lastParams)
	}

	client.result = Result{}
	if _, err := repo.Create(context.Background(), domain.Relationship{SourceID: "u-1", TargetID: "u-2", Type: "KNOWS"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRelationshipTypeGuard(t *testing.T) {
	client := &fakeClient{}
	repo := NewRelationshipRepository(client)

	_, err := repo.Create(context.Background(), domain.Relationship{SourceID: "a", TargetID: "b", Type: "X]->() DETACH DELETE n //"})
	if !domain.IsInjectionRisk(err) {
		t.Fatalf("got %v, want InjectionRiskError", err)
	}
	if _, err := repo.Delete(context.Background(), domain.Relationship{SourceID: "a", TargetID: "b", Type: "has space"}); !domain.IsInjectionRisk(err) {
		t.Fatalf("got %v, want InjectionRiskError", err)
	}
	if client.calls != 0 {
		t.Fatalf("store reached %d times despite invalid type", client.calls)
	}
}

func TestRelationshipDeleteCount(t *testing.T) {
	client := &fakeClient{result: Result{Counters: Counters{RelationshipsDeleted: 2}}}
	repo := NewRelationshipRepository(client)

	removed, err := repo.Delete(context.Background(), domain.Relationship{SourceID: "a", TargetID: "b", Type: "KNOWS"})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != 2 {
		t.Fatalf("got %d removed, want 2", removed)
	}
}
