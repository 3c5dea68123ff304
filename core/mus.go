package core

// Hand-written MUS serializers for persisted types. Field order is part of
// the stored format; append new fields at the end only.

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes an ID.
var IDMUS = idMUS{}

type idMUS struct{}

var _ mus.Serializer[ID] = idMUS{}

func (idMUS) Marshal(v ID, bs []byte) int { return varint.Uint64.Marshal(uint64(v), bs) }

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int { return varint.Uint64.Size(uint64(v)) }

func (idMUS) Skip(bs []byte) (int, error) { return varint.Uint64.Skip(bs) }

// timeMUS stores instants as Unix microseconds. The zero time round-trips.
var timeMUS = timeSer{}

type timeSer struct{}

var _ mus.Serializer[time.Time] = timeSer{}

func (timeSer) Marshal(v time.Time, bs []byte) int {
	var micros int64
	if !v.IsZero() {
		micros = v.UnixMicro()
	}
	return varint.Int64.Marshal(micros, bs)
}

func (timeSer) Unmarshal(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || micros == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeSer) Size(v time.Time) int {
	var micros int64
	if !v.IsZero() {
		micros = v.UnixMicro()
	}
	return varint.Int64.Size(micros)
}

func (timeSer) Skip(bs []byte) (int, error) { return varint.Int64.Skip(bs) }

// GlassGroupMUS serializes a GlassGroup.
var GlassGroupMUS = glassGroupMUS{}

type glassGroupMUS struct{}

var _ mus.Serializer[GlassGroup] = glassGroupMUS{}

func (glassGroupMUS) Marshal(v GlassGroup, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.ExternalId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Brands, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.Bool.Marshal(v.Active, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (glassGroupMUS) Unmarshal(bs []byte) (v GlassGroup, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.ExternalId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Brands, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Active, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (glassGroupMUS) Size(v GlassGroup) int {
	return IDMUS.Size(v.Id) +
		ord.String.Size(v.ExternalId) +
		ord.String.Size(v.Name) +
		ord.String.Size(v.Brands) +
		ord.String.Size(v.Description) +
		ord.Bool.Size(v.Active) +
		timeMUS.Size(v.CreatedAt) +
		timeMUS.Size(v.UpdatedAt)
}

func (glassGroupMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip, ord.String.Skip,
		ord.Bool.Skip,
		timeMUS.Skip, timeMUS.Skip,
	}
	var n1 int
	for _, skip := range skippers {
		if n1, err = skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// GlassMUS serializes a Glass.
var GlassMUS = glassMUS{}

type glassMUS struct{}

var _ mus.Serializer[Glass] = glassMUS{}

func (glassMUS) Marshal(v Glass, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.GroupId, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.Bool.Marshal(v.Active, bs[n:])
	return n
}

func (glassMUS) Unmarshal(bs []byte) (v Glass, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.GroupId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.Active, n1, err = ord.Bool.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (glassMUS) Size(v Glass) int {
	return IDMUS.Size(v.Id) + IDMUS.Size(v.GroupId) +
		ord.String.Size(v.Name) + ord.Bool.Size(v.Active)
}

func (glassMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = IDMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = ord.Bool.Skip(bs[n:])
	return n + n1, err
}

// GlassAliasMUS serializes a GlassAlias.
var GlassAliasMUS = glassAliasMUS{}

type glassAliasMUS struct{}

var _ mus.Serializer[GlassAlias] = glassAliasMUS{}

func (glassAliasMUS) Marshal(v GlassAlias, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.GlassId, bs[n:])
	n += ord.String.Marshal(v.Alias, bs[n:])
	n += ord.String.Marshal(v.NormalizedAlias, bs[n:])
	return n
}

func (glassAliasMUS) Unmarshal(bs []byte) (v GlassAlias, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.GlassId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Alias, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.NormalizedAlias, n1, err = ord.String.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (glassAliasMUS) Size(v GlassAlias) int {
	return IDMUS.Size(v.Id) + IDMUS.Size(v.GlassId) +
		ord.String.Size(v.Alias) + ord.String.Size(v.NormalizedAlias)
}

func (glassAliasMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = IDMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	n1, err = ord.String.Skip(bs[n:])
	return n + n1, err
}

// UserMUS serializes a User.
var UserMUS = userMUS{}

type userMUS struct{}

var _ mus.Serializer[User] = userMUS{}

func (userMUS) Marshal(v User, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.TelegramId, bs)
	n += ord.String.Marshal(v.Username, bs[n:])
	n += ord.String.Marshal(v.FirstName, bs[n:])
	n += ord.String.Marshal(v.LastName, bs[n:])
	n += timeMUS.Marshal(v.PremiumUntil, bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	n += timeMUS.Marshal(v.UpdatedAt, bs[n:])
	return n
}

func (userMUS) Unmarshal(bs []byte) (v User, n int, err error) {
	var n1 int
	if v.TelegramId, n, err = varint.Int64.Unmarshal(bs); err != nil {
		return
	}
	if v.Username, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.FirstName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.LastName, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.PremiumUntil, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (userMUS) Size(v User) int {
	return varint.Int64.Size(v.TelegramId) +
		ord.String.Size(v.Username) +
		ord.String.Size(v.FirstName) +
		ord.String.Size(v.LastName) +
		timeMUS.Size(v.PremiumUntil) +
		timeMUS.Size(v.CreatedAt) +
		timeMUS.Size(v.UpdatedAt)
}

func (userMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		varint.Int64.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		timeMUS.Skip, timeMUS.Skip, timeMUS.Skip,
	}
	var n1 int
	for _, skip := range skippers {
		if n1, err = skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// StarPaymentMUS serializes a StarPayment.
var StarPaymentMUS = starPaymentMUS{}

type starPaymentMUS struct{}

var _ mus.Serializer[StarPayment] = starPaymentMUS{}

func (starPaymentMUS) Marshal(v StarPayment, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.UserId, bs)
	n += ord.String.Marshal(v.ChargeId, bs[n:])
	n += ord.String.Marshal(v.ProviderCharge, bs[n:])
	n += ord.String.Marshal(v.Currency, bs[n:])
	n += varint.Int64.Marshal(v.Amount, bs[n:])
	n += ord.String.Marshal(v.Payload, bs[n:])
	n += varint.Int.Marshal(int(v.Status), bs[n:])
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	return n
}

func (starPaymentMUS) Unmarshal(bs []byte) (v StarPayment, n int, err error) {
	var n1 int
	if v.UserId, n, err = varint.Int64.Unmarshal(bs); err != nil {
		return
	}
	if v.ChargeId, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.ProviderCharge, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Currency, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Amount, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if v.Payload, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var status int
	if status, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Status = PaymentStatus(status)
	n += n1
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (starPaymentMUS) Size(v StarPayment) int {
	return varint.Int64.Size(v.UserId) +
		ord.String.Size(v.ChargeId) +
		ord.String.Size(v.ProviderCharge) +
		ord.String.Size(v.Currency) +
		varint.Int64.Size(v.Amount) +
		ord.String.Size(v.Payload) +
		varint.Int.Size(int(v.Status)) +
		timeMUS.Size(v.CreatedAt)
}

func (starPaymentMUS) Skip(bs []byte) (n int, err error) {
	skippers := []func([]byte) (int, error){
		varint.Int64.Skip,
		ord.String.Skip, ord.String.Skip, ord.String.Skip,
		varint.Int64.Skip,
		ord.String.Skip,
		varint.Int.Skip,
		timeMUS.Skip,
	}
	var n1 int
	for _, skip := range skippers {
		if n1, err = skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}

// BotEventMUS serializes a BotEvent.
var BotEventMUS = botEventMUS{}

type botEventMUS struct{}

var _ mus.Serializer[BotEvent] = botEventMUS{}

func (botEventMUS) Marshal(v BotEvent, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += varint.Int64.Marshal(v.UserId, bs[n:])
	n += ord.String.Marshal(string(v.Type), bs[n:])
	n += varint.PositiveInt.Marshal(len(v.Payload), bs[n:])
	for k, val := range v.Payload {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(val, bs[n:])
	}
	n += timeMUS.Marshal(v.CreatedAt, bs[n:])
	return n
}

func (botEventMUS) Unmarshal(bs []byte) (v BotEvent, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.UserId, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	var typ string
	if typ, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	v.Type = EventType(typ)
	n += n1
	var count int
	if count, n1, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return v, n + n1, err
	}
	n += n1
	if count > 0 {
		v.Payload = make(map[string]string, count)
	}
	for i := 0; i < count; i++ {
		var k, val string
		if k, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return v, n + n1, err
		}
		n += n1
		if val, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return v, n + n1, err
		}
		n += n1
		v.Payload[k] = val
	}
	v.CreatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	return v, n + n1, err
}

func (botEventMUS) Size(v BotEvent) int {
	size := IDMUS.Size(v.Id) +
		varint.Int64.Size(v.UserId) +
		ord.String.Size(string(v.Type)) +
		varint.PositiveInt.Size(len(v.Payload))
	for k, val := range v.Payload {
		size += ord.String.Size(k) + ord.String.Size(val)
	}
	return size + timeMUS.Size(v.CreatedAt)
}

func (botEventMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = varint.Int64.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	var count int
	if count, n1, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < count*2; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	n1, err = timeMUS.Skip(bs[n:])
	return n + n1, err
}
