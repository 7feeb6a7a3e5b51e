// Package bookmark defines saved topic references.
package bookmark

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"
)

// Bookmark points at a topic inside a subject module.
type Bookmark struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	Module  string    `json:"module"`
	Topic   string    `json:"topic"`
	Created Timestamp `json:"created"`
}

// New returns a bookmark stamped with the current time.
func New(subject, module, topic string) *Bookmark {
	b := &Bookmark{
		Subject: subject,
		Module:  module,
		Topic:   topic,
		Created: Timestamp{Time: time.Now()},
	}
	b.ID = KeyFor(subject, module, topic)
	return b
}

// KeyFor derives the stable id of a (subject, module, topic) triple.
func KeyFor(subject, module, topic string) string {
	sum := md5.Sum([]byte(strings.Join([]string{subject, module, topic}, "\x00")))
	return fmt.Sprintf("%x", sum[:8])
}

// Path renders the bookmark as "subject › module › topic".
func (b *Bookmark) Path() string {
	return strings.Join([]string{b.Subject, b.Module, b.Topic}, " › ")
}

func (b *Bookmark) String() string {
	return fmt.Sprintf("%s  %s", b.ID, b.Path())
}
