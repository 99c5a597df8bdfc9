package odoo

import (
	"context"
	"encoding/json"

	appsync "carelink/internal/application/sync"
)

var _ appsync.Gateway = (*Client)(nil)

const (
	ticketModel  = "helpdesk.ticket"
	messageModel = "mail.message"
	partnerModel = "res.partner"
)

var ticketFields = []string{"name", "description", "priority", "stage_id", "partner_id"}
var messageFields = []string{"body", "date", "author_id"}

// CreateTicket creates a remote ticket and returns its id.
func (c *Client) CreateTicket(ctx context.Context, in appsync.RemoteTicketInput) (int64, error) {
	values := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"priority":    in.Priority,
	}
	if in.ContactID != 0 {
		values["partner_id"] = in.ContactID
	}

	raw, err := c.ExecuteKw(ctx, ticketModel, "create", []interface{}{values}, nil)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, &TransientError{Op: "decode create result", Err: err}
	}
	return id, nil
}

// UpdateTicket pushes the writable fields of a linked ticket.
func (c *Client) UpdateTicket(ctx context.Context, remoteID int64, in appsync.RemoteTicketInput) error {
	values := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"priority":    in.Priority,
	}
	_, err := c.ExecuteKw(ctx, ticketModel, "write",
		[]interface{}{[]int64{remoteID}, values}, nil)
	return err
}

// DeleteTicket removes the remote record. An already-deleted ticket is
// not an error.
func (c *Client) DeleteTicket(ctx context.Context, remoteID int64) error {
	_, err := c.ExecuteKw(ctx, ticketModel, "unlink",
		[]interface{}{[]int64{remoteID}}, nil)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// GetTicket fetches a single remote snapshot. A ticket deleted on the
// remote side yields (nil, nil).
func (c *Client) GetTicket(ctx context.Context, remoteID int64) (*appsync.RemoteTicket, error) {
	raw, err := c.ExecuteKw(ctx, ticketModel, "read",
		[]interface{}{[]int64{remoteID}},
		map[string]interface{}{"fields": ticketFields})
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	t := decodeTicket(records[0])
	return &t, nil
}

// ListTickets returns all remote tickets belonging to a contact.
func (c *Client) ListTickets(ctx context.Context, contactID int64) ([]appsync.RemoteTicket, error) {
	domain := []interface{}{
		[]interface{}{"partner_id", "=", contactID},
	}
	raw, err := c.ExecuteKw(ctx, ticketModel, "search_read",
		[]interface{}{domain},
		map[string]interface{}{"fields": ticketFields})
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	tickets := make([]appsync.RemoteTicket, 0, len(records))
	for _, rec := range records {
		tickets = append(tickets, decodeTicket(rec))
	}
	return tickets, nil
}

// ListMessages returns the discussion thread of a remote ticket, oldest
// first. Timestamps stay in the remote wire format.
func (c *Client) ListMessages(ctx context.Context, remoteTicketID int64) ([]appsync.RemoteMessage, error) {
	domain := []interface{}{
		[]interface{}{"model", "=", ticketModel},
		[]interface{}{"res_id", "=", remoteTicketID},
		[]interface{}{"message_type", "in", []string{"comment", "email"}},
	}
	raw, err := c.ExecuteKw(ctx, messageModel, "search_read",
		[]interface{}{domain},
		map[string]interface{}{"fields": messageFields, "order": "date asc"})
	if err != nil {
		return nil, err
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	messages := make([]appsync.RemoteMessage, 0, len(records))
	for _, rec := range records {
		authorID, authorName := fieldPair(rec["author_id"])
		messages = append(messages, appsync.RemoteMessage{
			ID:         fieldInt64(rec["id"]),
			Body:       fieldString(rec["body"]),
			Date:       fieldString(rec["date"]),
			AuthorID:   authorID,
			AuthorName: authorName,
		})
	}
	return messages, nil
}

// PostMessage appends a comment to the remote thread and returns the
// created message id.
func (c *Client) PostMessage(ctx context.Context, remoteID int64, body string) (int64, error) {
	raw, err := c.ExecuteKw(ctx, ticketModel, "message_post",
		[]interface{}{[]int64{remoteID}},
		map[string]interface{}{
			"body":          body,
			"message_type":  "comment",
			"subtype_xmlid": "mail.mt_comment",
		})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, &TransientError{Op: "decode message_post result", Err: err}
	}
	return id, nil
}

// ResolveContact finds the remote contact matching an email, creating
// one when none exists.
func (c *Client) ResolveContact(ctx context.Context, name, email string) (int64, error) {
	domain := []interface{}{
		[]interface{}{"email", "=", email},
	}
	raw, err := c.ExecuteKw(ctx, partnerModel, "search",
		[]interface{}{domain},
		map[string]interface{}{"limit": 1})
	if err != nil {
		return 0, err
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return 0, &TransientError{Op: "decode search result", Err: err}
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	raw, err = c.ExecuteKw(ctx, partnerModel, "create",
		[]interface{}{map[string]interface{}{"name": name, "email": email}}, nil)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, &TransientError{Op: "decode create result", Err: err}
	}
	return id, nil
}

func decodeTicket(rec map[string]interface{}) appsync.RemoteTicket {
	stageID, stageName := fieldPair(rec["stage_id"])
	contactID, _ := fieldPair(rec["partner_id"])
	return appsync.RemoteTicket{
		ID:          fieldInt64(rec["id"]),
		Name:        fieldString(rec["name"]),
		Description: fieldString(rec["description"]),
		Priority:    fieldString(rec["priority"]),
		StageID:     stageID,
		StageName:   stageName,
		ContactID:   contactID,
	}
}

func decodeRecords(raw json.RawMessage) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &TransientError{Op: "decode records", Err: err}
	}
	return records, nil
}

// Unset fields arrive as JSON false instead of null, and relational
// fields as [id, label] pairs. The helpers below absorb both shapes.

func fieldString(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func fieldInt64(v interface{}) int64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int64(f)
}

func fieldPair(v interface{}) (int64, string) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) == 0 {
		return 0, ""
	}
	id := fieldInt64(pair[0])
	name := ""
	if len(pair) > 1 {
		name = fieldString(pair[1])
	}
	return id, name
}
