package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

func doCreatePerson(ctx context.Context, cfg cliConfig, id int64, name, role string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "presence.person.create", map[string]any{"id": id, "name": name, "role": role}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/persons", map[string]any{"id": id, "name": name, "role": role}, out)
}

func doCreateOrganization(ctx context.Context, cfg cliConfig, id int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "presence.organization.create", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/organizations", map[string]any{"id": id}, out)
}

func doCheckInBatch(ctx context.Context, cfg cliConfig, pairs [][2]int64, out any) error {
	items := make([]map[string]any, 0, len(pairs))
	for _, pair := range pairs {
		items = append(items, map[string]any{"user_id": pair[0], "org_id": pair[1]})
	}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "presence.checkin", map[string]any{"items": items}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/checkin", items, out)
}

func doActiveUsers(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "presence.active", map[string]any{}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/checkin/active-users", nil, out)
}

func doCheckout(ctx context.Context, cfg cliConfig, orgID int64, admin bool, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		method := "presence.checkout"
		if admin {
			method = "presence.checkout.admin"
		}
		return client.call(ctx, method, map[string]any{"org_id": orgID}, out)
	}
	client := newAPIClient(cfg.Server)
	path := "/checkout"
	if admin {
		path = "/checkout/admin"
	}
	return client.request(ctx, http.MethodPost, path+"?org_id="+int64ToString(orgID), nil, out)
}

func doSetTimes(ctx context.Context, cfg cliConfig, orgID int64, opening, closing string, out any) error {
	payload := map[string]any{"org_id": orgID, "opening_time": opening, "closing_time": closing}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "org.set-times", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/organization/set-times", payload, out)
}

func doGatedCheckIn(ctx context.Context, cfg cliConfig, userID, orgID int64, out any) error {
	payload := map[string]any{"user_id": userID, "org_id": orgID}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "org.checkin", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/organization/checkin", payload, out)
}

func doActiveUsersAt(ctx context.Context, cfg cliConfig, orgID int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "org.active", map[string]any{"org_id": orgID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/organization/active-users?org_id="+int64ToString(orgID), nil, out)
}

func doAutoCheckout(ctx context.Context, cfg cliConfig, orgID int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "org.auto-checkout", map[string]any{"org_id": orgID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/organization/auto-checkout?org_id="+int64ToString(orgID), nil, out)
}

func doAdminCheckout(ctx context.Context, cfg cliConfig, orgID int64, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "org.admin-checkout", map[string]any{"org_id": orgID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/organization/admin-checkout?org_id="+int64ToString(orgID), nil, out)
}

func doUserCreate(ctx context.Context, cfg cliConfig, user domain.SocialUser, out any) error {
	payload := map[string]any{"id": user.ID, "name": user.Name, "email": user.Email, "age": user.Age, "gender": user.Gender}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "users.create", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/users/", payload, out)
}

func doUserList(ctx context.Context, cfg cliConfig, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "users.list", map[string]any{}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/users/", nil, out)
}

func doUserGet(ctx context.Context, cfg cliConfig, id string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "users.get", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, out)
}

func doUserUpdate(ctx context.Context, cfg cliConfig, id string, fields map[string]any, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		payload := map[string]any{"id": id}
		for k, v := range fields {
			payload[k] = v
		}
		return client.call(ctx, "users.update", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPut, "/users/"+url.PathEscape(id), fields, out)
}

func doUserDelete(ctx context.Context, cfg cliConfig, id string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "users.delete", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, out)
}

func doFollow(ctx context.Context, cfg cliConfig, followerID, followeeID string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "social.follow", map[string]any{"follower_id": followerID, "followee_id": followeeID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/users/"+url.PathEscape(followerID)+"/follow/"+url.PathEscape(followeeID), nil, out)
}

func doLike(ctx context.Context, cfg cliConfig, userID, postID string, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "social.like", map[string]any{"user_id": userID, "post_id": postID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/like/"+url.PathEscape(postID), nil, out)
}

func doFollowers(ctx context.Context, cfg cliConfig, id string, out *[]domain.SocialUser) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "social.followers", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/users/"+url.PathEscape(id)+"/followers", nil, out)
}

func doFollowing(ctx context.Context, cfg cliConfig, id string, out *[]domain.SocialUser) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "social.following", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/users/"+url.PathEscape(id)+"/following", nil, out)
}

func doPostCreate(ctx context.Context, cfg cliConfig, post domain.Post, out any) error {
	payload := map[string]any{"id": post.ID, "content": post.Content, "timestamp": post.Timestamp}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "posts.create", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/posts", payload, out)
}

func doLikes(ctx context.Context, cfg cliConfig, postID string, out *[]domain.SocialUser) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "social.likes", map[string]any{"id": postID}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID)+"/likes", nil, out)
}

func doRelationCreate(ctx context.Context, cfg cliConfig, source, target, relType string, out any) error {
	payload := map[string]any{"source_id": source, "target_id": target, "relationship_type": relType}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "relations.create", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/relationships/", payload, out)
}

func doRelationDelete(ctx context.Context, cfg cliConfig, source, target, relType string, out any) error {
	payload := map[string]any{"source_id": source, "target_id": target, "relationship_type": relType}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "relations.delete", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodDelete, "/relationships/", payload, out)
}

func doDirectoryCreate(ctx context.Context, cfg cliConfig, user domain.DirectoryUser, out any) error {
	payload := map[string]any{"name": user.Name, "email": user.Email, "age": user.Age, "gender": user.Gender}
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "directory.user.create", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPost, "/directory/users/", payload, out)
}

func doDirectoryList(ctx context.Context, cfg cliConfig, skip, limit int, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "directory.user.list", map[string]any{"skip": skip, "limit": limit}, out)
	}
	client := newAPIClient(cfg.Server)
	path := fmt.Sprintf("/directory/users/?skip=%d&limit=%d", skip, limit)
	return client.request(ctx, http.MethodGet, path, nil, out)
}

func doDirectoryGet(ctx context.Context, cfg cliConfig, id uint, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "directory.user.get", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodGet, "/directory/users/"+uintToString(id), nil, out)
}

func doDirectoryUpdate(ctx context.Context, cfg cliConfig, id uint, fields map[string]any, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		payload := map[string]any{"id": id}
		for k, v := range fields {
			payload[k] = v
		}
		return client.call(ctx, "directory.user.update", payload, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodPut, "/directory/users/"+uintToString(id), fields, out)
}

func doDirectoryDelete(ctx context.Context, cfg cliConfig, id uint, out any) error {
	if cfg.Transport == "uds" {
		client := newRPCClient(cfg.Socket)
		return client.call(ctx, "directory.user.delete", map[string]any{"id": id}, out)
	}
	client := newAPIClient(cfg.Server)
	return client.request(ctx, http.MethodDelete, "/directory/users/"+uintToString(id), nil, out)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func int64ToString(v int64) string {
	return strconv.FormatInt(v, 10)
}
