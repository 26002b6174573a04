package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDiscountDays(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"sorted descending", []int{5, 30, 15}, []int{30, 15, 5}},
		{"duplicates removed", []int{7, 7, 3, 7}, []int{7, 3}},
		{"out of range dropped", []int{0, -2, 366, 365, 1}, []int{365, 1}},
		{"empty", nil, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDiscountDays(tt.in))
		})
	}
}

func TestRolePrivileges(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	manager := &User{Role: RoleManager}
	staff := &User{Role: RoleStaff}

	assert.True(t, admin.HasPrivilege(PrivUserCreate))
	assert.True(t, admin.HasPrivilege(PrivProductViewAll))

	assert.True(t, manager.HasPrivilege(PrivBrandCreate))
	assert.True(t, manager.HasPrivilege(PrivUserView))
	assert.False(t, manager.HasPrivilege(PrivUserDelete))
	assert.False(t, manager.HasPrivilege(PrivProductViewAll))

	assert.True(t, staff.HasPrivilege(PrivProductCreate))
	assert.False(t, staff.HasPrivilege(PrivBrandCreate))
	assert.False(t, staff.HasPrivilege(PrivUserView))

	assert.False(t, Role("owner").Valid())
	assert.Empty(t, Role("owner").Privileges())
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	exp := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)

	p := &UserProduct{ExpiryDate: &exp}
	days, ok := p.DaysUntilExpiry(now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	p.ExpiryDate = &past
	days, _ = p.DaysUntilExpiry(now)
	assert.Equal(t, -2, days)

	p.ExpiryDate = nil
	_, ok = p.DaysUntilExpiry(now)
	assert.False(t, ok)
}
