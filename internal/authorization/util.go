// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

const (
	OWNER_RELATION  = "owner"
	MEMBER_RELATION = "member"

	PRIVILEGED_RELATION = "privileged"
	ADMIN_RELATION      = "admin"

	CAN_VIEW_PERMISSION = "can_view"
	CAN_EDIT_PERMISSION = "can_edit"
)

func UserTuple(userId string) string {
	return "user:" + userId
}

func OrganizationTuple(orgId string) string {
	return "organization:" + orgId
}

func PrivilegedTuple(privilegedId string) string {
	return "privileged:" + privilegedId
}
