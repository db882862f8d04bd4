package model

import (
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// MainBranchID is the key of the branch every conversation starts with.
const MainBranchID = "main"

// Message is a single immutable entry in a branch.
type Message struct {
	ID         string    `json:"id" yaml:"id"`
	Role       Role      `json:"role" yaml:"role"`
	Content    string    `json:"content" yaml:"content"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	TokenCount int       `json:"tokenCount" yaml:"tokenCount"`
	// ParentID refers to the previous message of the same branch. It is only
	// used for traversal and never owns the referenced message.
	ParentID string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// Branch is an alternate continuation of a conversation.
type Branch struct {
	ID string `json:"id" yaml:"id"`
	// ParentMessageID is the main-branch message this branch forked from.
	// Empty for the main branch.
	ParentMessageID string     `json:"parentMessageId,omitempty" yaml:"parentMessageId,omitempty"`
	Messages        []*Message `json:"messages" yaml:"messages"`
	CreatedAt       time.Time  `json:"createdAt" yaml:"createdAt"`
}

// Last returns the newest message of the branch, or nil when it is empty.
func (b *Branch) Last() *Message {
	if len(b.Messages) == 0 {
		return nil
	}
	return b.Messages[len(b.Messages)-1]
}

// TokenSum returns the exact sum of the branch's message token counts.
func (b *Branch) TokenSum() int {
	total := 0
	for _, m := range b.Messages {
		total += m.TokenCount
	}
	return total
}

// IndexOf returns the position of the message with the given id, or -1.
func (b *Branch) IndexOf(messageID string) int {
	for i, m := range b.Messages {
		if m.ID == messageID {
			return i
		}
	}
	return -1
}

// Conversation owns all of its branches.
type Conversation struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	// TotalTokenCount is the sum of token counts over the main branch.
	TotalTokenCount  int                `json:"totalTokenCount" yaml:"totalTokenCount"`
	MaxContextTokens int                `json:"maxContextTokens" yaml:"maxContextTokens"`
	Branches         map[string]*Branch `json:"branches" yaml:"branches"`
}

// Main returns the main branch.
func (c *Conversation) Main() *Branch {
	return c.Branches[MainBranchID]
}

// Touch bumps UpdatedAt without ever moving it backwards.
func (c *Conversation) Touch(now time.Time) {
	if now.After(c.UpdatedAt) {
		c.UpdatedAt = now
	}
}

// RecomputeTotal resets TotalTokenCount from the main branch.
func (c *Conversation) RecomputeTotal() {
	if main := c.Main(); main != nil {
		c.TotalTokenCount = main.TokenSum()
		return
	}
	c.TotalTokenCount = 0
}

// Clone returns a deep copy. Messages are copied by value so the clone never
// aliases the original's messages.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Branches = make(map[string]*Branch, len(c.Branches))
	for id, b := range c.Branches {
		nb := *b
		nb.Messages = CopyMessages(b.Messages)
		out.Branches[id] = &nb
	}
	return &out
}

// CopyMessages returns value copies of msgs.
func CopyMessages(msgs []*Message) []*Message {
	out := make([]*Message, len(msgs))
	for i, m := range msgs {
		cp := *m
		out[i] = &cp
	}
	return out
}

// ConversationSummary is the listing view of a conversation.
type ConversationSummary struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	TotalTokenCount int       `json:"totalTokenCount"`
	MessageCount    int       `json:"messageCount"`
	BranchCount     int       `json:"branchCount"`
}

// Summary builds the listing view.
func (c *Conversation) Summary() ConversationSummary {
	count := 0
	if main := c.Main(); main != nil {
		count = len(main.Messages)
	}
	return ConversationSummary{
		ID:              c.ID,
		Title:           c.Title,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		TotalTokenCount: c.TotalTokenCount,
		MessageCount:    count,
		BranchCount:     len(c.Branches),
	}
}
