package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/glassmatch/core"
)

// Key prefixes for different data types
const (
	groupPrefix         = "glsgrp"
	groupExternalPrefix = "glsgrpx"
	groupIDSeq          = "glsgrpseq"
	glassPrefix         = "gls"
	glassGroupPrefix    = "glsg"
	glassIDSeq          = "glsseq"
	aliasPrefix         = "glsal"
	aliasGlassPrefix    = "glsalg"
	userPrefix          = "usr"
	paymentPrefix       = "pay"
	eventPrefix         = "botevt"
	eventUserPrefix     = "botevtu"
	eventTimePrefix     = "botevtt"
	eventIDSeq          = "botevtseq"
)

// makeGroupKey generates a key for a glass group by ID.
func makeGroupKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", groupPrefix, id))
}

// makeGroupExternalKey generates an index key for group lookup by external ID.
func makeGroupExternalKey(externalId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", groupExternalPrefix, externalId))
}

// makeGlassKey generates a key for a glass by ID.
func makeGlassKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", glassPrefix, id))
}

// makeGlassGroupKey generates a composite key for the group index.
// Format: prefix:groupID:glassID
func makeGlassGroupKey(groupId, glassId core.ID) []byte {
	return makeCompositeKey(glassGroupPrefix, uint64(groupId), uint64(glassId))
}

// makePartialGlassGroupKey generates a partial key for group scans.
func makePartialGlassGroupKey(groupId core.ID) []byte {
	return makePartialCompositeKey(glassGroupPrefix, uint64(groupId))
}

// makeAliasKey generates a key for an alias by ID.
func makeAliasKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", aliasPrefix, id))
}

// makeAliasGlassKey generates a composite key for the glass index.
// Format: prefix:glassID:aliasID
func makeAliasGlassKey(glassId, aliasId core.ID) []byte {
	return makeCompositeKey(aliasGlassPrefix, uint64(glassId), uint64(aliasId))
}

// makePartialAliasGlassKey generates a partial key for alias scans.
func makePartialAliasGlassKey(glassId core.ID) []byte {
	return makePartialCompositeKey(aliasGlassPrefix, uint64(glassId))
}

// makeUserKey generates a key for a user by Telegram ID.
func makeUserKey(telegramId int64) []byte {
	return []byte(fmt.Sprintf("%s:%d", userPrefix, telegramId))
}

// makePaymentKey generates a key for a payment by charge ID.
func makePaymentKey(chargeId string) []byte {
	return []byte(fmt.Sprintf("%s:%s", paymentPrefix, chargeId))
}

// makeEventKey generates a key for an event by ID.
func makeEventKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", eventPrefix, id))
}

// makeEventUserKey generates a composite key for the per-user event index.
// Format: prefix:userID:eventID
func makeEventUserKey(userId int64, eventId core.ID) []byte {
	return makeCompositeKey(eventUserPrefix, uint64(userId), uint64(eventId))
}

// makePartialEventUserKey generates a partial key for per-user event scans.
func makePartialEventUserKey(userId int64) []byte {
	return makePartialCompositeKey(eventUserPrefix, uint64(userId))
}

// makeEventTimeKey generates a composite key for the time-ordered event index.
// Format: prefix:timestampMicros:eventID
func makeEventTimeKey(unixMicro int64, eventId core.ID) []byte {
	return makeCompositeKey(eventTimePrefix, uint64(unixMicro), uint64(eventId))
}

// makeCompositeKey builds prefix:a:b with both parts written in BigEndian
// order so lexicographic sort works correctly.
func makeCompositeKey(prefix string, a, b uint64) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], a)
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], b)
	return buf
}

// makePartialCompositeKey builds prefix:a for range scans.
func makePartialCompositeKey(prefix string, a uint64) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], a)
	return buf
}
