// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"
	"fmt"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

const v0AuthzModel = `
model
  schema 1.1

type user

type privileged
  relations
    define admin: [user]

type organization
  relations
    define privileged: [privileged]
    define owner: [user]
    define member: [user] or owner
    define can_view: member or admin from privileged
    define can_edit: owner or admin from privileged
`

var models = map[string]string{
	"v0": v0AuthzModel,
}

type AuthorizationModelProvider struct {
	version string
}

// GetModel compiles the DSL of the selected version, an unknown version
// or an invalid DSL panics as it is a programming error.
func (a *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	dsl, ok := models[a.version]
	if !ok {
		panic(fmt.Sprintf("unknown authorization model version %s", a.version))
	}

	raw, err := transformer.TransformDSLToJSON(dsl)
	if err != nil {
		panic(fmt.Sprintf("invalid authorization model %s: %v", a.version, err))
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(raw), model); err != nil {
		panic(fmt.Sprintf("failed to decode authorization model %s: %v", a.version, err))
	}

	return model
}

func NewAuthorizationModelProvider(version string) *AuthorizationModelProvider {
	return &AuthorizationModelProvider{version: version}
}
