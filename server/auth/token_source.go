package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

const tokenLookupTimeout = 5 * time.Second

// TokenSource reads the token from store on every call, so a token cleared after a 401
// is not sent again.
func TokenSource(store Store) oauth2.TokenSource {
	return &storeTokenSource{store: store}
}

type storeTokenSource struct {
	store Store
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenLookupTimeout)
	defer cancel()

	token, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}
