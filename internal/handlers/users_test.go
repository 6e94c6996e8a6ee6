package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/pixgram/backend/internal/models"
	"github.com/anonto42/pixgram/backend/internal/testutil"
)

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	rec := app.get("/health", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec); got["status"] != "healthy" || got["service"] == "" {
		t.Errorf("health = %v", got)
	}
}

func TestSyncUser(t *testing.T) {
	app := newTestApp(t)

	expectStatus(t, app.get("/auth/user", "firebase-uid-123456"), http.StatusNotFound)
	expectStatus(t, app.get("/auth/user", ""), http.StatusUnauthorized)

	rec := app.request(http.MethodPost, "/auth/user", "firebase-uid-123456", nil, "")
	expectStatus(t, rec, http.StatusOK)
	first := decode[models.User](t, rec)
	if first.ID != "firebase-uid-123456" || first.Email != "firebase-uid-123456@example.com" {
		t.Errorf("synced user = %+v", first)
	}
	if first.Username != "firebaseuid123456_123456" {
		t.Errorf("default username = %q", first.Username)
	}
	if first.DisplayName != "Display firebase-uid-123456" {
		t.Errorf("display name = %q", first.DisplayName)
	}

	rec = app.sendJSON(http.MethodPost, "/auth/user", "firebase-uid-123456", map[string]string{"username": "someone_else"})
	expectStatus(t, rec, http.StatusOK)
	if again := decode[models.User](t, rec); again.Username != first.Username {
		t.Errorf("resync changed username to %q", again.Username)
	}

	var count int64
	app.db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("users = %d after two syncs, want 1", count)
	}

	rec = app.get("/auth/user", "firebase-uid-123456")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.User](t, rec); got.ID != first.ID {
		t.Errorf("current user = %+v", got)
	}
}

func TestSyncUserWithChosenUsername(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")

	rec := app.sendJSON(http.MethodPost, "/auth/user", "bob", map[string]string{"username": "bobby"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.User](t, rec); got.Username != "bobby" {
		t.Errorf("username = %q, want bobby", got.Username)
	}

	rec = app.sendJSON(http.MethodPost, "/auth/user", "carol", map[string]string{"username": "user_alice"})
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessageContains(t, rec, "taken")

	rec = app.sendJSON(http.MethodPost, "/auth/user", "dave", map[string]string{"username": "no spaces!"})
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessageContains(t, rec, "username")

	rec = app.sendJSON(http.MethodPost, "/auth/user", "erin", map[string]string{"username": "suggested"})
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessageContains(t, rec, "reserved")
}

func TestGetUserProfile(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")
	testutil.CreateUser(t, app.db, "bob")
	testutil.CreateUser(t, app.db, "carol")
	now := time.Now().UTC()
	testutil.CreatePost(t, app.db, "alice", "older", now.Add(-time.Minute))
	testutil.CreatePost(t, app.db, "alice", "newer", now)
	app.db.Create(&models.Follow{FollowerID: "bob", FollowingID: "alice"})
	app.db.Create(&models.Follow{FollowerID: "carol", FollowingID: "alice"})
	app.db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"})

	rec := app.get("/users/user_alice", "")
	expectStatus(t, rec, http.StatusOK)
	profile := decode[models.UserProfile](t, rec)
	if profile.ID != "alice" || profile.FollowerCount != 2 || profile.FollowingCount != 1 || profile.PostCount != 2 {
		t.Errorf("profile = id %s, %d followers, %d following, %d posts", profile.ID, profile.FollowerCount, profile.FollowingCount, profile.PostCount)
	}
	if len(profile.Posts) != 2 || profile.Posts[0].Caption != "newer" {
		t.Errorf("profile posts = %+v, want newest first", profile.Posts)
	}
	if profile.IsFollowing {
		t.Error("isFollowing = true for an anonymous viewer")
	}
	if got := decode[models.UserProfile](t, app.get("/users/user_alice", "bob")); !got.IsFollowing {
		t.Error("isFollowing = false for a follower")
	}
	if got := decode[models.UserProfile](t, app.get("/users/user_bob", "carol")); got.IsFollowing {
		t.Error("isFollowing = true for a non-follower")
	}
	if got := decode[models.UserProfile](t, app.get("/users/user_alice", "alice")); got.IsFollowing {
		t.Error("isFollowing = true on the viewer's own profile")
	}

	rec = app.get("/users/nobody", "")
	expectStatus(t, rec, http.StatusNotFound)
	if msg := errorMessage(t, rec); msg != "User not found" {
		t.Errorf("message = %q", msg)
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")
	testutil.CreateUser(t, app.db, "bob")

	rec := app.sendJSON(http.MethodPatch, "/users/me", "alice", map[string]string{
		"bio":         "<p>Photographer</p>",
		"displayName": "Alice A.",
	})
	expectStatus(t, rec, http.StatusOK)
	got := decode[models.User](t, rec)
	if got.Bio != "Photographer" || got.DisplayName != "Alice A." || got.Username != "user_alice" {
		t.Errorf("updated user = %+v", got)
	}

	rec = app.sendJSON(http.MethodPatch, "/users/me", "alice", map[string]string{"username": "user_bob"})
	expectStatus(t, rec, http.StatusBadRequest)
	expectMessageContains(t, rec, "taken")

	rec = app.sendJSON(http.MethodPatch, "/users/me", "alice", map[string]string{"username": "ab"})
	expectStatus(t, rec, http.StatusBadRequest)

	for _, reserved := range []string{"suggested", "Suggested"} {
		rec = app.sendJSON(http.MethodPatch, "/users/me", "alice", map[string]string{"username": reserved})
		expectStatus(t, rec, http.StatusBadRequest)
		expectMessageContains(t, rec, "reserved")
	}

	rec = app.sendJSON(http.MethodPatch, "/users/me", "alice", map[string]string{"username": "alice.photos"})
	expectStatus(t, rec, http.StatusOK)
	expectStatus(t, app.get("/users/alice.photos", ""), http.StatusOK)
}

func TestToggleFollowEndpoint(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")
	testutil.CreateUser(t, app.db, "bob")

	rec := app.request(http.MethodPost, "/users/bob/follow", "alice", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.FollowToggleResponse](t, rec); !got.Following || got.FollowerCount != 1 {
		t.Errorf("follow = %+v, want following with 1 follower", got)
	}

	rec = app.request(http.MethodPost, "/users/bob/follow", "alice", nil, "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.FollowToggleResponse](t, rec); got.Following || got.FollowerCount != 0 {
		t.Errorf("unfollow = %+v, want not following with 0 followers", got)
	}

	expectStatus(t, app.request(http.MethodPost, "/users/alice/follow", "alice", nil, ""), http.StatusBadRequest)
	expectStatus(t, app.request(http.MethodPost, "/users/ghost/follow", "alice", nil, ""), http.StatusNotFound)
}

func TestSuggestedUsers(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")
	testutil.CreateUser(t, app.db, "bob")
	testutil.CreateUser(t, app.db, "carol")
	testutil.CreateUser(t, app.db, "dave")
	app.db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"})

	rec := app.get("/users/suggested", "alice")
	expectStatus(t, rec, http.StatusOK)
	suggested := decode[[]models.UserCompact](t, rec)
	ids := map[string]bool{}
	for _, u := range suggested {
		ids[u.ID] = true
	}
	if len(suggested) != 2 || !ids["carol"] || !ids["dave"] {
		t.Errorf("suggested = %+v, want carol and dave", suggested)
	}

	if got := decode[[]models.UserCompact](t, app.get("/users/suggested?limit=1", "alice")); len(got) != 1 {
		t.Errorf("limit=1 returned %d users", len(got))
	}
	expectStatus(t, app.get("/users/suggested", ""), http.StatusUnauthorized)
}

func TestFeedShowsOwnAndFollowedPosts(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "alice")
	testutil.CreateUser(t, app.db, "bob")
	testutil.CreateUser(t, app.db, "carol")
	now := time.Now().UTC()
	testutil.CreatePost(t, app.db, "alice", "from alice", now.Add(-2*time.Minute))
	testutil.CreatePost(t, app.db, "bob", "from bob", now.Add(-time.Minute))
	testutil.CreatePost(t, app.db, "carol", "from carol", now)
	app.db.Create(&models.Follow{FollowerID: "alice", FollowingID: "bob"})

	rec := app.get("/feed", "alice")
	expectStatus(t, rec, http.StatusOK)
	feed := decode[[]models.PostWithDetails](t, rec)
	if len(feed) != 2 || feed[0].Caption != "from bob" || feed[1].Caption != "from alice" {
		captions := make([]string, len(feed))
		for i, p := range feed {
			captions[i] = p.Caption
		}
		t.Errorf("feed = %v, want [from bob, from alice]", captions)
	}
	if len(feed) > 0 && feed[0].User.Username != "user_bob" {
		t.Errorf("feed author = %q", feed[0].User.Username)
	}
}
