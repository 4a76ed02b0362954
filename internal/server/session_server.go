package server

import (
	"context"
	"fmt"
	"net/http"

	"lotdesk/pkg/httpx/reply"
	"lotdesk/pkg/httpx/req"
	"lotdesk/pkg/rest"
)

type sessionControl interface {
	Start(ctx context.Context, intervalSeconds int) error
	Stop() error
	SetInterval(intervalSeconds int) error
	Running() bool
	Interval() int
}

type SessionServer struct {
	sessionControl sessionControl

	// The poll loop must outlive the request that started it, so Start
	// gets the application context, not the request one.
	appCtx context.Context //nolint:containedctx
}

func NewSessionServer(appCtx context.Context, sessionControl sessionControl) SessionServer {
	return SessionServer{
		sessionControl: sessionControl,
		appCtx:         appCtx,
	}
}

func (s SessionServer) getV1Session(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.Session{
		Active:          s.sessionControl.Running(),
		IntervalSeconds: s.sessionControl.Interval(),
	})

	return nil
}

func (s SessionServer) postV1Session(w http.ResponseWriter, r *http.Request) error {
	var request rest.SessionRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.sessionControl.Start(s.appCtx, request.IntervalSeconds); err != nil {
		return fmt.Errorf("sessionControl.Start: %w", err)
	}

	reply.Created(w)

	return nil
}

func (s SessionServer) deleteV1Session(w http.ResponseWriter, _ *http.Request) error {
	if err := s.sessionControl.Stop(); err != nil {
		return fmt.Errorf("sessionControl.Stop: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s SessionServer) putV1SessionInterval(w http.ResponseWriter, r *http.Request) error {
	var request rest.SessionRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.sessionControl.SetInterval(request.IntervalSeconds); err != nil {
		return fmt.Errorf("sessionControl.SetInterval: %w", err)
	}

	reply.OK(w)

	return nil
}
