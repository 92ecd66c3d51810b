package google

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/stockbot/kmcp/pkg/persistence"
)

// Service builds authenticated API clients on demand, so a missing token
// surfaces per invocation instead of failing server startup.
type Service struct {
	auth *Auth
	opts []option.ClientOption
}

// NewService wires the token slot at tokenFile. Extra options are appended
// to every API client; tests use them to point at local servers.
func NewService(tokenFile string, opts ...option.ClientOption) *Service {
	return &Service{
		auth: NewAuth(persistence.NewJSONFileStore(tokenFile)),
		opts: opts,
	}
}

func (s *Service) clientOptions() ([]option.ClientOption, error) {
	ts, err := s.auth.TokenSource()
	if err != nil {
		return nil, err
	}
	return append([]option.ClientOption{option.WithTokenSource(ts)}, s.opts...), nil
}

func (s *Service) calendar(ctx context.Context) (*calendar.Service, error) {
	opts, err := s.clientOptions()
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "build calendar client")
	}
	return svc, nil
}

func (s *Service) gmail(ctx context.Context) (*gmail.Service, error) {
	opts, err := s.clientOptions()
	if err != nil {
		return nil, err
	}
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "build gmail client")
	}
	return svc, nil
}
