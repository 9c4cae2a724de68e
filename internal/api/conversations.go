package api

import (
	"context"
	"net/url"

	"github.com/matheus3301/zapdesk/internal/convo"
)

// ListConversations fetches a filtered conversation snapshot.
// Implements convo.Lister.
func (c *Client) ListConversations(ctx context.Context, f convo.Filters) ([]convo.Conversation, error) {
	var rows []convo.Conversation
	if err := c.get(ctx, "/conversations", f.Values(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMessages fetches the message history for a conversation.
func (c *Client) ListMessages(ctx context.Context, userID string) ([]convo.Message, error) {
	var msgs []convo.Message
	if err := c.get(ctx, "/conversations/"+url.PathEscape(userID)+"/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Assign sets the owning agent for a conversation. Empty agent unassigns.
func (c *Client) Assign(ctx context.Context, userID, agent string) error {
	body := map[string]string{"assigned_agent": agent}
	return c.post(ctx, "/conversations/"+url.PathEscape(userID)+"/assign", body, nil)
}

// SetTags replaces the tag set for a conversation.
func (c *Client) SetTags(ctx context.Context, userID string, tags []string) error {
	body := map[string][]string{"tags": tags}
	return c.post(ctx, "/conversations/"+url.PathEscape(userID)+"/tags", body, nil)
}

// MarkRead clears the unread counter server-side when a conversation is
// opened.
func (c *Client) MarkRead(ctx context.Context, userID string) error {
	return c.post(ctx, "/conversations/"+url.PathEscape(userID)+"/read", nil, nil)
}

// Agent is a support agent available for assignment.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListAgents fetches the agents reference data for the filter UI.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.get(ctx, "/admin/agents", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// ListTagOptions fetches the known tag labels for the filter UI.
func (c *Client) ListTagOptions(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.get(ctx, "/admin/tag-options", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
