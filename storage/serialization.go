// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/glassmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalGroup serializes a GlassGroup to bytes.
func MarshalGroup(group *core.GlassGroup) []byte {
	buf := make([]byte, core.GlassGroupMUS.Size(*group))
	core.GlassGroupMUS.Marshal(*group, buf)
	return buf
}

// UnmarshalGroup deserializes a GlassGroup from bytes.
func UnmarshalGroup(data []byte) (*core.GlassGroup, error) {
	group, _, err := core.GlassGroupMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// MarshalGlass serializes a Glass to bytes.
func MarshalGlass(glass *core.Glass) []byte {
	buf := make([]byte, core.GlassMUS.Size(*glass))
	core.GlassMUS.Marshal(*glass, buf)
	return buf
}

// UnmarshalGlass deserializes a Glass from bytes.
func UnmarshalGlass(data []byte) (*core.Glass, error) {
	glass, _, err := core.GlassMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &glass, nil
}

// MarshalAlias serializes a GlassAlias to bytes.
func MarshalAlias(alias *core.GlassAlias) []byte {
	buf := make([]byte, core.GlassAliasMUS.Size(*alias))
	core.GlassAliasMUS.Marshal(*alias, buf)
	return buf
}

// UnmarshalAlias deserializes a GlassAlias from bytes.
func UnmarshalAlias(data []byte) (*core.GlassAlias, error) {
	alias, _, err := core.GlassAliasMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &alias, nil
}

// MarshalUser serializes a User to bytes.
func MarshalUser(user *core.User) []byte {
	buf := make([]byte, core.UserMUS.Size(*user))
	core.UserMUS.Marshal(*user, buf)
	return buf
}

// UnmarshalUser deserializes a User from bytes.
func UnmarshalUser(data []byte) (*core.User, error) {
	user, _, err := core.UserMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// MarshalPayment serializes a StarPayment to bytes.
func MarshalPayment(payment *core.StarPayment) []byte {
	buf := make([]byte, core.StarPaymentMUS.Size(*payment))
	core.StarPaymentMUS.Marshal(*payment, buf)
	return buf
}

// UnmarshalPayment deserializes a StarPayment from bytes.
func UnmarshalPayment(data []byte) (*core.StarPayment, error) {
	payment, _, err := core.StarPaymentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// MarshalEvent serializes a BotEvent to bytes.
func MarshalEvent(event *core.BotEvent) []byte {
	buf := make([]byte, core.BotEventMUS.Size(*event))
	core.BotEventMUS.Marshal(*event, buf)
	return buf
}

// UnmarshalEvent deserializes a BotEvent from bytes.
func UnmarshalEvent(data []byte) (*core.BotEvent, error) {
	event, _, err := core.BotEventMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &event, nil
}
