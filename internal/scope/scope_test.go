package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandshq/strands-api/internal/utils"
)

func TestResolve(t *testing.T) {
	manager := Session{ActorID: "m1", Role: RoleManager, SalonID: "salon-a"}
	admin := Session{ActorID: "root", Role: RoleSuperAdmin}

	tests := []struct {
		name    string
		session Session
		param   string
		want    Scope
		wantErr error
	}{
		{
			name:    "manager without override gets own salon",
			session: manager,
			want:    Scope{Kind: KindSalon, SalonID: "salon-a"},
		},
		{
			name:    "manager naming own salon is allowed",
			session: manager,
			param:   "salon-a",
			want:    Scope{Kind: KindSalon, SalonID: "salon-a"},
		},
		{
			name:    "manager naming foreign salon is refused",
			session: manager,
			param:   "salon-b",
			wantErr: utils.ErrTenantForbidden,
		},
		{
			name:    "manager without salon assignment is refused",
			session: Session{ActorID: "m2", Role: RoleManager},
			wantErr: utils.ErrTenantForbidden,
		},
		{
			name:    "super-admin without override aggregates",
			session: admin,
			want:    Scope{Kind: KindAggregate},
		},
		{
			name:    "super-admin with override impersonates",
			session: admin,
			param:   "salon-b",
			want:    Scope{Kind: KindSalon, SalonID: "salon-b", Impersonated: true},
		},
		{
			name:    "unknown role is refused",
			session: Session{ActorID: "x", Role: Role("intruder")},
			wantErr: utils.ErrTenantForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.session, tt.param)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanWrite(t *testing.T) {
	assert.True(t, Scope{Kind: KindSalon, SalonID: "s"}.CanWrite())
	assert.True(t, Scope{Kind: KindSalon, SalonID: "s", Impersonated: true}.CanWrite())
	assert.False(t, Scope{Kind: KindAggregate}.CanWrite())
}
