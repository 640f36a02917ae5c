package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/radaiko/ReadRiser/internal/models"
)

func TestUsers_CreateRequiresActorHeader(t *testing.T) {
	env := setupTestEnv(t)

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
		"username": "nobody",
		"role":     "parent",
	}, nil)
	assertStatus(t, resp, http.StatusUnauthorized)

	resp = performJSONRequest(t, env.app, http.MethodGet, "/api/users/", nil, map[string]string{
		"X-Actor-ID": "not-a-uuid",
	})
	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestUsers_UnknownActorGetsAccessDenied(t *testing.T) {
	env := setupTestEnv(t)

	resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/", nil, actorHeaders(uuid.New()))
	assertStatus(t, resp, http.StatusForbidden)

	body := decodeJSONMap(t, resp)
	if body["error"] != "access denied" {
		t.Errorf("error = %v, want access denied", body["error"])
	}
}

func TestUsers_HierarchyLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	admin := createTestUser(t, env.db, "admin", models.RoleAdmin, nil)

	// admin creates a parent
	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
		"username":    "pat",
		"displayName": "Pat",
		"role":        "parent",
	}, actorHeaders(admin.ID))
	assertStatus(t, resp, http.StatusCreated)

	parentData := dataField(t, decodeJSONMap(t, resp))
	parentID, err := uuid.Parse(parentData["id"].(string))
	if err != nil {
		t.Fatalf("parent id not a uuid: %v", err)
	}

	// the parent creates a kid under themselves
	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
		"username":    "kim",
		"displayName": "Kim",
		"role":        "kid",
		"parentID":    parentID.String(),
	}, actorHeaders(parentID))
	assertStatus(t, resp, http.StatusCreated)

	kidData := dataField(t, decodeJSONMap(t, resp))
	kidID, err := uuid.Parse(kidData["id"].(string))
	if err != nil {
		t.Fatalf("kid id not a uuid: %v", err)
	}
	if kidData["parentID"] != parentID.String() {
		t.Errorf("kid parentID = %v, want %s", kidData["parentID"], parentID)
	}

	// the back-link landed on the parent record
	var parent models.User
	if err := env.db.First(&parent, "id = ?", parentID).Error; err != nil {
		t.Fatalf("reloading parent failed: %v", err)
	}
	if !parent.ChildrenIDs.Contains(kidID) {
		t.Error("parent childrenIDs should list the new kid")
	}

	// kids create nothing
	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
		"username": "sibling",
		"role":     "kid",
		"parentID": parentID.String(),
	}, actorHeaders(kidID))
	assertStatus(t, resp, http.StatusForbidden)

	// another parent cannot create a kid under pat
	other := createTestUser(t, env.db, "otherparent", models.RoleParent, nil)
	resp = performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
		"username": "stolen",
		"role":     "kid",
		"parentID": parentID.String(),
	}, actorHeaders(other.ID))
	assertStatus(t, resp, http.StatusForbidden)

	// admin sees everyone
	resp = performJSONRequest(t, env.app, http.MethodGet, "/api/users/", nil, actorHeaders(admin.ID))
	assertStatus(t, resp, http.StatusOK)
	listData := dataField(t, decodeJSONMap(t, resp))
	if count := listData["count"].(float64); count != 4 {
		t.Errorf("admin list count = %v, want 4", count)
	}
}

func TestUsers_CreateValidation(t *testing.T) {
	env := setupTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.RoleAdmin, nil)

	t.Run("invalid role", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
			"username": "x",
			"role":     "superuser",
		}, actorHeaders(admin.ID))
		assertStatus(t, resp, http.StatusBadRequest)
	})

	t.Run("duplicate username is case-insensitive", func(t *testing.T) {
		createTestUser(t, env.db, "Taken", models.RoleParent, nil)
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
			"username": "taken",
			"role":     "parent",
		}, actorHeaders(admin.ID))
		assertStatus(t, resp, http.StatusConflict)
	})

	t.Run("kid without parentID", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/users/", map[string]any{
			"username": "orphan",
			"role":     "kid",
		}, actorHeaders(admin.ID))
		assertStatus(t, resp, http.StatusBadRequest)
	})
}

func TestUsers_GetVisibility(t *testing.T) {
	env := setupTestEnv(t)

	parentA := createTestUser(t, env.db, "parent_a", models.RoleParent, nil)
	parentB := createTestUser(t, env.db, "parent_b", models.RoleParent, nil)
	kid := createTestUser(t, env.db, "kid_a", models.RoleKid, &parentA.ID)

	t.Run("parent sees own kid", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/"+kid.ID.String(), nil, actorHeaders(parentA.ID))
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["username"] != "kid_a" {
			t.Errorf("username = %v, want kid_a", data["username"])
		}
	})

	t.Run("unrelated parent is denied", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/"+kid.ID.String(), nil, actorHeaders(parentB.ID))
		assertStatus(t, resp, http.StatusForbidden)
	})

	t.Run("missing user is a plain 404", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/"+uuid.NewString(), nil, actorHeaders(parentA.ID))
		assertStatus(t, resp, http.StatusNotFound)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodGet, "/api/users/not-a-uuid", nil, actorHeaders(parentA.ID))
		assertStatus(t, resp, http.StatusBadRequest)
	})
}
