package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userPage struct {
	Data []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
	Meta pageMeta `json:"meta"`
}

func TestFollowEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	bobID, bob := s.signup("bob")
	follow := fmt.Sprintf("/api/v1/users/%d/follow", bobID)

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, follow, alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, follow, alice, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/v1/users/9999/follow", alice, nil).Code)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"user_id": %d, "is_following": false, "is_followed_by": true}`, aliceID), rec.Body.String())

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers", bobID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page userPage
	decode(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "alice", page.Data[0].Username)

	rec = s.do(http.MethodGet, "/api/v1/following", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = userPage{}
	decode(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, bobID, page.Data[0].ID)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", bobID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile struct {
		FollowersCount int64 `json:"followers_count"`
		FollowingCount int64 `json:"following_count"`
	}
	decode(t, rec, &profile)
	assert.Equal(t, int64(1), profile.FollowersCount)
	assert.Zero(t, profile.FollowingCount)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, follow, alice, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, follow, alice, nil).Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/following", aliceID), "", nil)
	page = userPage{}
	decode(t, rec, &page)
	assert.Empty(t, page.Data)
}

func TestFollowersPagination(t *testing.T) {
	s := newTestServer(t)
	targetID, _ := s.signup("target")
	for i := range 3 {
		_, token := s.signup(fmt.Sprintf("fan%d", i))
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", targetID), token, nil).Code)
	}

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/followers?page=2&limit=2", targetID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page userPage
	decode(t, rec, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "fan2", page.Data[0].Username)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.False(t, page.Meta.HasNextPage)
}

func TestFeedEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.signup("alice")
	bobID, bob := s.signup("bob")
	_, carol := s.signup("carol")

	s.createPost(alice, "alice post")
	s.createPost(bob, "bob first")
	s.createPost(carol, "carol post")
	s.createPost(bob, "bob second")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", bobID), alice, nil).Code)

	rec := s.do(http.MethodGet, "/api/v1/feed", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var feed struct {
		Success bool           `json:"success"`
		Data    []postResponse `json:"data"`
		Meta    pageMeta       `json:"meta"`
	}
	decode(t, rec, &feed)
	assert.True(t, feed.Success)
	require.Len(t, feed.Data, 2)
	assert.Equal(t, "bob second", feed.Data[0].Title)
	assert.Equal(t, "bob first", feed.Data[1].Title)
	assert.Equal(t, "bob", feed.Data[0].Author.Username)
	assert.Equal(t, int64(2), feed.Meta.TotalItems)

	rec = s.do(http.MethodGet, "/api/v1/feed?ordering=created_at&limit=1", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &feed)
	require.Len(t, feed.Data, 1)
	assert.Equal(t, "bob first", feed.Data[0].Title)
	assert.True(t, feed.Meta.HasNextPage)
}

func TestNotificationEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceID, alice := s.signup("alice")
	_, bob := s.signup("bob")
	post := s.createPost(alice, "hello")

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliceID), bob, nil).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/likes", post.ID), bob, nil).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), alice, map[string]string{"content": "self"}).Code)

	rec := s.do(http.MethodGet, "/api/v1/notifications", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Data struct {
			Notifications []struct {
				ID     uint   `json:"id"`
				Verb   string `json:"verb"`
				Target *struct {
					Kind string `json:"kind"`
					ID   uint   `json:"id"`
				} `json:"target"`
				Actor struct {
					Username string `json:"username"`
				} `json:"actor"`
			} `json:"notifications"`
		} `json:"data"`
		Meta pageMeta `json:"meta"`
	}
	decode(t, rec, &resp)
	list := resp.Data.Notifications
	require.Len(t, list, 2)
	assert.Equal(t, "liked", list[0].Verb)
	require.NotNil(t, list[0].Target)
	assert.Equal(t, "post", list[0].Target.Kind)
	assert.Equal(t, post.ID, list[0].Target.ID)
	assert.Equal(t, "bob", list[0].Actor.Username)
	assert.Equal(t, "followed", list[1].Verb)
	assert.Nil(t, list[1].Target)

	path := fmt.Sprintf("/api/v1/notifications/%d", list[0].ID)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, path, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, path, alice, nil).Code)
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.signup("alice")
	aliciaID, alicia := s.signup("alicia")
	post := s.createPost(alicia, "still here")

	rec := s.do(http.MethodPut, "/api/v1/profile", alice, map[string]string{"bio": "hi", "profile_picture": "https://example.com/a.png"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"bio":"hi"`)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPut, "/api/v1/profile", alice, map[string]string{"profile_picture": "not a url"}).Code)

	rec = s.do(http.MethodGet, "/api/v1/users/search?q=ALI", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []struct {
		Username string `json:"username"`
	}
	decode(t, rec, &users)
	assert.Len(t, users, 2)
	assert.NotContains(t, rec.Body.String(), "password")

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/users/search", "", nil).Code)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/profile", alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/profile", alice, nil).Code)

	// The token outlives the account but can no longer write anything.
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/likes", post.ID), alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", post.ID), alice, map[string]string{"content": "ghost"}).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, fmt.Sprintf("/api/v1/users/%d/follow", aliciaID), alice, nil).Code)
}
