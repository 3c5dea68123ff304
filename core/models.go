package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// GlassGroup is a set of interchangeable screen protectors.
// Every Glass belongs to exactly one group.
type GlassGroup struct {
	Id          ID
	ExternalId  string // Stable key from the source spreadsheet, e.g. "G0001"
	Name        string
	Brands      string // Comma-separated brand/line tags, may include the "shared" token
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Glass is a single named screen protector inside a group.
type Glass struct {
	Id      ID
	GroupId ID
	Name    string
	Active  bool
}

// GlassAlias is an alternative spelling for a glass.
// NormalizedAlias is derived from Alias and recomputed on every write.
type GlassAlias struct {
	Id              ID
	GlassId         ID
	Alias           string
	NormalizedAlias string
}

// Key returns the content string used to derive the alias ID.
func (a *GlassAlias) Key() string {
	return "(" + strconv.FormatUint(uint64(a.GlassId), 10) + "," + a.Alias + ")"
}

// MatchTier is the confidence level of a single alias/name match.
// Lower values are stronger matches.
type MatchTier int

const (
	// TierAliasExact matches when the normalized alias equals the normalized query.
	TierAliasExact MatchTier = iota
	// TierAliasPrefix matches when the normalized alias starts with the normalized query.
	TierAliasPrefix
	// TierAliasContains matches when the normalized alias contains the normalized query.
	TierAliasContains
	// TierNameExact matches when the glass name equals the trimmed query case-insensitively.
	TierNameExact
	// TierNameContains matches when the glass name contains the trimmed query case-insensitively.
	TierNameContains

	// TierNone marks an entry that matched no tier. Never emitted as a candidate.
	TierNone MatchTier = -1
)

// Valid reports whether t is one of the five emitted tiers.
func (t MatchTier) Valid() bool {
	return t >= TierAliasExact && t <= TierNameContains
}

// CorpusAlias is one active alias entry in a corpus snapshot.
type CorpusAlias struct {
	Alias      string
	Normalized string
	GlassName  string
	GroupId    ID
}

// CorpusGlass is one active glass entry in a corpus snapshot.
type CorpusGlass struct {
	Name    string
	GroupId ID
}

// Corpus is a read-only snapshot of the active catalog handed to the match
// pipeline. It contains only aliases and glasses whose glass and owning
// group are both active.
type Corpus struct {
	Aliases []CorpusAlias
	Glasses []CorpusGlass
}

// GlassNames returns the distinct names of the group's glasses in the order
// they appear in the snapshot.
func (c *Corpus) GlassNames(groupId ID) []string {
	var names []string
	seen := make(map[string]bool)
	for _, g := range c.Glasses {
		if g.GroupId != groupId || seen[g.Name] {
			continue
		}
		seen[g.Name] = true
		names = append(names, g.Name)
	}
	return names
}

// Candidate is a single scored match produced by the matcher. Ephemeral.
type Candidate struct {
	Tier        MatchTier
	GroupId     ID
	MatchedName string
}

// GroupMatch is the best candidate recorded for a group during aggregation.
type GroupMatch struct {
	Tier        MatchTier
	MatchedName string
}

// GroupResult is one ranked group in a search response, carrying the full
// (untruncated) compatible glass list. Display truncation happens at render
// time only.
type GroupResult struct {
	MatchedName       string
	Group             *GlassGroup
	CompatibleGlasses []string
}

// SearchResponse is the outcome of resolving a query. Found=false is a
// normal, successful outcome, not an error.
type SearchResponse struct {
	Found   bool
	Query   string
	Results []*GroupResult
}

// User is a bot user with an optional premium expiry.
type User struct {
	TelegramId   int64
	Username     string
	FirstName    string
	LastName     string
	PremiumUntil time.Time // Zero when the user never had premium
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PremiumActiveAt reports whether premium is active at the given instant.
func (u *User) PremiumActiveAt(now time.Time) bool {
	return !u.PremiumUntil.IsZero() && u.PremiumUntil.After(now)
}

// PremiumPlan is a purchasable premium duration.
type PremiumPlan struct {
	Code         string
	Title        string
	Description  string
	PriceStars   int64
	DurationDays int
	Active       bool
}

// PaymentStatus is the lifecycle state of a star payment.
type PaymentStatus int

const (
	PaymentSucceeded PaymentStatus = iota + 1
	PaymentRefunded
	PaymentFailed
)

// StarPayment records one received Stars payment.
type StarPayment struct {
	UserId         int64
	ChargeId       string
	ProviderCharge string
	Currency       string
	Amount         int64
	Payload        string
	Status         PaymentStatus
	CreatedAt      time.Time
}

// EventType classifies a bot analytics event.
type EventType string

const (
	EventStart          EventType = "start"
	EventHelp           EventType = "help"
	EventInfo           EventType = "info"
	EventSearch         EventType = "search"
	EventSearchResult   EventType = "search_result"
	EventPremiumOpen    EventType = "premium_open"
	EventInvoiceSent    EventType = "invoice_sent"
	EventPaymentSuccess EventType = "payment_success"
	EventPaymentFail    EventType = "payment_fail"
)

// BotEvent is one analytics event.
type BotEvent struct {
	Id        ID
	UserId    int64
	Type      EventType
	Payload   map[string]string
	CreatedAt time.Time
}
