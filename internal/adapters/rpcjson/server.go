// Package rpcjson serves the same operations as the HTTP API over a local
// unix socket, speaking JSON-RPC 2.0.
package rpcjson

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/S-h-i-v-a-y/assignment/internal/application"
	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

type Server struct {
	presence  *application.PresenceService
	social    *application.SocialService
	relations *application.RelationshipService
	directory *application.DirectoryService
	listener  net.Listener
	path      string
}

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Start(
	path string,
	presence *application.PresenceService,
	social *application.SocialService,
	relations *application.RelationshipService,
	directory *application.DirectoryService,
) (*Server, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("rpc socket path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		_ = os.Remove(path)
		return nil, err
	}

	s := &Server{
		presence:  presence,
		social:    social,
		relations: relations,
		directory: directory,
		listener:  ln,
		path:      path,
	}
	go s.serve()
	return s, nil
}

func (s *Server) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	err := s.listener.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	dec := json.NewDecoder(conn)
	enc := json.NewEncoder(conn)

	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			_ = enc.Encode(response{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "parse error"}, ID: nil})
			return
		}

		resp := s.dispatch(context.Background(), req)
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	if req.JSONRPC != "2.0" || strings.TrimSpace(req.Method) == "" {
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32600, Message: "invalid request"}, ID: req.ID}
	}

	switch req.Method {
	case "presence.person.create":
		var p struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
			Role string `json:"role"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.presence.CreatePerson(ctx, domain.Person{ID: p.ID, Name: p.Name, Role: p.Role})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "presence.organization.create":
		var p struct {
			ID int64 `json:"id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.presence.CreateOrganization(ctx, p.ID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "presence.checkin":
		var p struct {
			Items []struct {
				UserID int64 `json:"user_id"`
				OrgID  int64 `json:"org_id"`
			} `json:"items"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		requests := make([]application.CheckInRequest, 0, len(p.Items))
		for _, item := range p.Items {
			requests = append(requests, application.CheckInRequest{UserID: item.UserID, OrganizationID: item.OrgID})
		}
		out, err := s.presence.CheckInBatch(ctx, requests)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"results": out})
	case "presence.active":
		out, err := s.presence.ActiveUsers(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"active_users": out})
	case "presence.checkout":
		orgID, ok := orgIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.presence.CheckoutNonAdmin(ctx, orgID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "All non-admin users have been checked out"})
	case "presence.checkout.admin":
		orgID, ok := orgIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.presence.CheckoutAdminLegacy(ctx, orgID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Admin has been checked out"})
	case "org.set-times":
		var p struct {
			OrgID       int64  `json:"org_id"`
			OpeningTime string `json:"opening_time"`
			ClosingTime string `json:"closing_time"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.presence.SetHours(ctx, p.OrgID, p.OpeningTime, p.ClosingTime); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Operating hours updated"})
	case "org.checkin":
		var p struct {
			UserID int64 `json:"user_id"`
			OrgID  int64 `json:"org_id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.presence.GatedCheckIn(ctx, p.UserID, p.OrgID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Checked in successfully"})
	case "org.active":
		orgID, ok := orgIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.presence.ActiveUsersAt(ctx, orgID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"active_users": out})
	case "org.admin-checkout":
		orgID, ok := orgIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.presence.AdminCheckout(ctx, orgID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Admin has been checked out"})
	case "org.auto-checkout":
		orgID, ok := orgIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		ran, err := s.presence.AutoCheckout(ctx, orgID)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"checked_out": ran})
	case "users.create":
		var p struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Email  string `json:"email"`
			Age    int64  `json:"age"`
			Gender string `json:"gender"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.social.CreateUser(ctx, domain.SocialUser{ID: p.ID, Name: p.Name, Email: p.Email, Age: p.Age, Gender: p.Gender})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "users.list":
		out, err := s.social.ListUsers(ctx)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "users.get":
		id, ok := idParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.social.GetUser(ctx, id)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "users.update":
		var p struct {
			ID     string  `json:"id"`
			Name   *string `json:"name"`
			Email  *string `json:"email"`
			Age    *int64  `json:"age"`
			Gender *string `json:"gender"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.social.UpdateUser(ctx, p.ID, domain.SocialUserUpdate{Name: p.Name, Email: p.Email, Age: p.Age, Gender: p.Gender})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "users.delete":
		id, ok := idParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.social.DeleteUser(ctx, id); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "User " + id + " has been successfully deleted"})
	case "posts.create":
		var p struct {
			ID        string `json:"id"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.social.CreatePost(ctx, domain.Post{ID: p.ID, Content: p.Content, Timestamp: p.Timestamp})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "social.follow":
		var p struct {
			FollowerID string `json:"follower_id"`
			FolloweeID string `json:"followee_id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.social.Follow(ctx, p.FollowerID, p.FolloweeID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Follow relationship created"})
	case "social.like":
		var p struct {
			UserID string `json:"user_id"`
			PostID string `json:"post_id"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		if err := s.social.Like(ctx, p.UserID, p.PostID); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Like relationship created"})
	case "social.followers":
		id, ok := idParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.social.Followers(ctx, id)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "social.following":
		id, ok := idParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.social.Following(ctx, id)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "social.likes":
		id, ok := idParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.social.Likes(ctx, id)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "relations.create":
		rel, ok := relationshipParams(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		id, err := s.relations.Create(ctx, rel)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"relationship_id": id})
	case "relations.delete":
		rel, ok := relationshipParams(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.relations.Delete(ctx, rel); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "Relationship deleted"})
	case "directory.user.create":
		var p struct {
			Name   string `json:"name"`
			Email  string `json:"email"`
			Age    int    `json:"age"`
			Gender string `json:"gender"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.directory.CreateUser(ctx, domain.DirectoryUser{Name: p.Name, Email: p.Email, Age: p.Age, Gender: p.Gender})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "directory.user.list":
		var p struct {
			Skip  int `json:"skip"`
			Limit int `json:"limit"`
		}
		if len(req.Params) > 0 && !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.directory.ListUsers(ctx, p.Skip, p.Limit)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "directory.user.get":
		id, ok := uintIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		out, err := s.directory.GetUser(ctx, id)
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "directory.user.update":
		var p struct {
			ID     uint    `json:"id"`
			Name   *string `json:"name"`
			Email  *string `json:"email"`
			Age    *int    `json:"age"`
			Gender *string `json:"gender"`
		}
		if !decodeParams(req.Params, &p) {
			return invalidParams(req.ID)
		}
		out, err := s.directory.UpdateUser(ctx, p.ID, domain.DirectoryUserUpdate{Name: p.Name, Email: p.Email, Age: p.Age, Gender: p.Gender})
		if err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, out)
	case "directory.user.delete":
		id, ok := uintIDParam(req.Params)
		if !ok {
			return invalidParams(req.ID)
		}
		if err := s.directory.DeleteUser(ctx, id); err != nil {
			return appError(req.ID, err)
		}
		return result(req.ID, map[string]any{"message": "User has been successfully deleted"})
	default:
		return response{JSONRPC: "2.0", Error: &rpcError{Code: -32601, Message: "method not found"}, ID: req.ID}
	}
}

func decodeParams(raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func orgIDParam(raw json.RawMessage) (int64, bool) {
	var p struct {
		OrgID int64 `json:"org_id"`
	}
	if !decodeParams(raw, &p) || p.OrgID == 0 {
		return 0, false
	}
	return p.OrgID, true
}

func idParam(raw json.RawMessage) (string, bool) {
	var p struct {
		ID string `json:"id"`
	}
	if !decodeParams(raw, &p) || p.ID == "" {
		return "", false
	}
	return p.ID, true
}

func uintIDParam(raw json.RawMessage) (uint, bool) {
	var p struct {
		ID uint `json:"id"`
	}
	if !decodeParams(raw, &p) || p.ID == 0 {
		return 0, false
	}
	return p.ID, true
}

func relationshipParams(raw json.RawMessage) (domain.Relationship, bool) {
	var p struct {
		SourceID         any    `json:"source_id"`
		TargetID         any    `json:"target_id"`
		RelationshipType string `json:"relationship_type"`
	}
	if !decodeParams(raw, &p) {
		return domain.Relationship{}, false
	}
	return domain.Relationship{SourceID: p.SourceID, TargetID: p.TargetID, Type: p.RelationshipType}, true
}

func result(id, payload any) response {
	return response{JSONRPC: "2.0", Result: payload, ID: id}
}

func invalidParams(id any) response {
	return response{JSONRPC: "2.0", Error: &rpcError{Code: -32602, Message: "invalid params"}, ID: id}
}

// appError maps the error taxonomy onto JSON-RPC error codes: 40400 for
// absence, 40300 for closed hours, 40000 for rejected input, 50000 for an
// opaque store failure.
func appError(id any, err error) response {
	code := 50000
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = 40400
	case errors.Is(err, domain.ErrOutsideHours):
		code = 40300
	case errors.Is(err, domain.ErrTimesNotSet), domain.IsValidation(err), domain.IsInjectionRisk(err):
		code = 40000
	}
	return response{JSONRPC: "2.0", Error: &rpcError{Code: code, Message: err.Error()}, ID: id}
}
