package context

import (
	"context"
	"testing"

	"github.com/muhammadheryan/community-market/model"
	"github.com/stretchr/testify/assert"
)

func TestPrincipalRoundTrip(t *testing.T) {
	ctx := WithPrincipal(context.Background(), model.Principal{UserID: 7, IsAdmin: true})

	p, ok := GetPrincipal(ctx)
	assert.True(t, ok)
	assert.Equal(t, model.Principal{UserID: 7, IsAdmin: true}, p)

	id, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)
}

func TestGetPrincipal_Missing(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)
}
