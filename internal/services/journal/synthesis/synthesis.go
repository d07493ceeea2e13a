// Package synthesis talks to the threaded conversation collaborator that
// produces companion replies and weekly reflections.
package synthesis

import (
	"context"

	"github.com/lumidiary/lumidiary/internal/services/journal/classify"
)

// Client is the boundary to the thread collaborator. CreateThread opens a
// conversation; AddMessage appends a prompt and returns the model reply.
type Client interface {
	CreateThread(ctx context.Context) (string, error)
	AddMessage(ctx context.Context, handle, content string, route classify.Route) (string, error)
}
