package church

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"church-app-go/internal/domain/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

type fakeChurchRepo struct {
	churches      map[string]*Church
	members       map[string]*Membership
	invites       map[string]*InviteToken
	failAddMember bool
}

func newFakeChurchRepo() *fakeChurchRepo {
	return &fakeChurchRepo{
		churches: make(map[string]*Church),
		members:  make(map[string]*Membership),
		invites:  make(map[string]*InviteToken),
	}
}

func memberKey(churchID, userID string) string {
	return churchID + "/" + userID
}

// Transaction restores the previous state when fn fails.
func (r *fakeChurchRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	churches := make(map[string]*Church, len(r.churches))
	for k, v := range r.churches {
		copied := *v
		churches[k] = &copied
	}
	members := make(map[string]*Membership, len(r.members))
	for k, v := range r.members {
		copied := *v
		members[k] = &copied
	}
	invites := make(map[string]*InviteToken, len(r.invites))
	for k, v := range r.invites {
		copied := *v
		invites[k] = &copied
	}

	if err := fn(r); err != nil {
		r.churches = churches
		r.members = members
		r.invites = invites
		return err
	}
	return nil
}

func (r *fakeChurchRepo) CreateChurch(ctx context.Context, church *Church) error {
	copied := *church
	r.churches[church.ID] = &copied
	return nil
}

func (r *fakeChurchRepo) GetChurch(ctx context.Context, churchID string) (*Church, error) {
	church, ok := r.churches[churchID]
	if !ok {
		return nil, ErrChurchNotFound
	}
	copied := *church
	return &copied, nil
}

func (r *fakeChurchRepo) ListChurchesByUser(ctx context.Context, userID string) ([]ChurchWithRole, error) {
	result := make([]ChurchWithRole, 0)
	for _, church := range r.churches {
		member, ok := r.members[memberKey(church.ID, userID)]
		if !ok && church.OwnerID != userID {
			continue
		}
		item := ChurchWithRole{Church: *church}
		if ok {
			item.Role = member.Role
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeChurchRepo) UpdateChurch(ctx context.Context, church *Church) error {
	copied := *church
	r.churches[church.ID] = &copied
	return nil
}

func (r *fakeChurchRepo) DeleteChurch(ctx context.Context, churchID string) error {
	delete(r.churches, churchID)
	for key, member := range r.members {
		if member.ChurchID == churchID {
			delete(r.members, key)
		}
	}
	return nil
}

func (r *fakeChurchRepo) IsSlugTaken(ctx context.Context, slug string) (bool, error) {
	for _, church := range r.churches {
		if church.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeChurchRepo) AddMember(ctx context.Context, member *Membership) error {
	if r.failAddMember {
		return errInjected
	}
	copied := *member
	if copied.JoinedAt.IsZero() {
		copied.JoinedAt = time.Now().UTC()
	}
	r.members[memberKey(member.ChurchID, member.UserID)] = &copied
	return nil
}

func (r *fakeChurchRepo) GetMember(ctx context.Context, churchID, userID string) (*Membership, error) {
	member, ok := r.members[memberKey(churchID, userID)]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeChurchRepo) ListMembers(ctx context.Context, churchID string) ([]MemberProfile, error) {
	result := make([]MemberProfile, 0)
	for _, member := range r.members {
		if member.ChurchID == churchID {
			result = append(result, MemberProfile{UserID: member.UserID, Role: member.Role, JoinedAt: member.JoinedAt})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (r *fakeChurchRepo) UpdateMemberRole(ctx context.Context, churchID, userID, role string) error {
	member, ok := r.members[memberKey(churchID, userID)]
	if !ok {
		return ErrMemberNotFound
	}
	member.Role = role
	return nil
}

func (r *fakeChurchRepo) DeleteMember(ctx context.Context, churchID, userID string) (bool, error) {
	key := memberKey(churchID, userID)
	if _, ok := r.members[key]; !ok {
		return false, nil
	}
	delete(r.members, key)
	return true, nil
}

func (r *fakeChurchRepo) CreateInvite(ctx context.Context, invite *InviteToken) error {
	copied := *invite
	r.invites[invite.ID] = &copied
	return nil
}

func (r *fakeChurchRepo) GetInviteByToken(ctx context.Context, token string) (*InviteToken, error) {
	for _, invite := range r.invites {
		if invite.Token == token {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, ErrInviteNotFound
}

func (r *fakeChurchRepo) ListInvites(ctx context.Context, churchID string) ([]InviteToken, error) {
	result := make([]InviteToken, 0)
	for _, invite := range r.invites {
		if invite.ChurchID == churchID {
			result = append(result, *invite)
		}
	}
	return result, nil
}

func (r *fakeChurchRepo) IncrementInviteUse(ctx context.Context, inviteID string) (bool, error) {
	invite, ok := r.invites[inviteID]
	if !ok || invite.UsedCount >= invite.MaxUses {
		return false, nil
	}
	invite.UsedCount++
	return true, nil
}

func (r *fakeChurchRepo) DeleteInvite(ctx context.Context, churchID, inviteID string) (bool, error) {
	invite, ok := r.invites[inviteID]
	if !ok || invite.ChurchID != churchID {
		return false, nil
	}
	delete(r.invites, inviteID)
	return true, nil
}

func (r *fakeChurchRepo) DeleteStaleInvites(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	for id, invite := range r.invites {
		if invite.Expired(now) || invite.Exhausted() {
			delete(r.invites, id)
			count++
		}
	}
	return count, nil
}

func seedChurch(repo *fakeChurchRepo, id, ownerID string) {
	repo.churches[id] = &Church{ID: id, Name: "Church " + id, Slug: "church-" + id, OwnerID: ownerID}
}

func TestCreateChurchAddsOwnerAsAdmin(t *testing.T) {
	repo := newFakeChurchRepo()
	svc := NewService(repo)

	created, err := svc.CreateChurch(context.Background(), CreateChurchInput{OwnerID: "u1", Name: "  Youth Group ", Description: " Fridays "})
	require.NoError(t, err)

	assert.Equal(t, "Youth Group", created.Name)
	assert.Equal(t, "youth-group", created.Slug)
	require.NotNil(t, created.Description)
	assert.Equal(t, "Fridays", *created.Description)

	member, ok := repo.members[memberKey(created.ID, "u1")]
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, member.Role)
}

func TestCreateChurchRollsBackWhenMembershipFails(t *testing.T) {
	repo := newFakeChurchRepo()
	repo.failAddMember = true
	svc := NewService(repo)

	_, err := svc.CreateChurch(context.Background(), CreateChurchInput{OwnerID: "u1", Name: "Youth Group"})
	require.ErrorIs(t, err, errInjected)
	assert.Empty(t, repo.churches)
	assert.Empty(t, repo.members)
}

func TestCreateChurchSlugCollision(t *testing.T) {
	repo := newFakeChurchRepo()
	repo.churches["c0"] = &Church{ID: "c0", Name: "Grace", Slug: "grace", OwnerID: "x"}
	svc := NewService(repo)

	created, err := svc.CreateChurch(context.Background(), CreateChurchInput{OwnerID: "u1", Name: "Grace"})
	require.NoError(t, err)
	assert.NotEqual(t, "grace", created.Slug)
	assert.Regexp(t, `^grace-[0-9a-z]{4}$`, created.Slug)
}

func TestCreateChurchRequiresName(t *testing.T) {
	svc := NewService(newFakeChurchRepo())
	_, err := svc.CreateChurch(context.Background(), CreateChurchInput{OwnerID: "u1", Name: "   "})
	_, ok := validation.As(err)
	assert.True(t, ok)
}

func TestIsAdminCombinations(t *testing.T) {
	cases := []struct {
		name  string
		owner bool
		role  string
		want  bool
	}{
		{name: "owner with admin row", owner: true, role: RoleAdmin, want: true},
		{name: "owner without row", owner: true, role: "", want: true},
		{name: "owner with member row", owner: true, role: RoleMember, want: true},
		{name: "admin member", owner: false, role: RoleAdmin, want: true},
		{name: "plain member", owner: false, role: RoleMember, want: false},
		{name: "teacher", owner: false, role: RoleTeacher, want: false},
		{name: "stranger", owner: false, role: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeChurchRepo()
			ownerID := "someone-else"
			if tc.owner {
				ownerID = "u1"
			}
			seedChurch(repo, "c1", ownerID)
			if tc.role != "" {
				repo.members[memberKey("c1", "u1")] = &Membership{ID: "m1", ChurchID: "c1", UserID: "u1", Role: tc.role}
			}

			got, err := NewService(repo).IsAdmin(context.Background(), "c1", "u1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveAccess(t *testing.T) {
	repo := newFakeChurchRepo()
	seedChurch(repo, "c1", "owner")
	repo.members[memberKey("c1", "teacher")] = &Membership{ChurchID: "c1", UserID: "teacher", Role: RoleTeacher}
	svc := NewService(repo)
	ctx := context.Background()

	access, err := svc.ResolveAccess(ctx, "c1", "teacher")
	require.NoError(t, err)
	assert.True(t, access.CanTakeAttendance())
	assert.False(t, access.IsAdmin())
	assert.Equal(t, "Teacher", access.RoleLabel())

	owner, err := svc.ResolveAccess(ctx, "c1", "owner")
	require.NoError(t, err)
	assert.True(t, owner.IsAdmin())
	assert.Equal(t, RoleAdmin, owner.EffectiveRole())

	_, err = svc.ResolveAccess(ctx, "c1", "stranger")
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = svc.ResolveAccess(ctx, "missing", "owner")
	assert.ErrorIs(t, err, ErrChurchNotFound)
}

func TestUpdateChurchRequiresAdmin(t *testing.T) {
	repo := newFakeChurchRepo()
	seedChurch(repo, "c1", "owner")
	svc := NewService(repo)

	name := "Renamed"
	_, err := svc.UpdateChurch(context.Background(), Access{ChurchID: "c1", UserID: "u2", Role: RoleMember}, UpdateChurchInput{Name: &name})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateChurch(context.Background(), Access{ChurchID: "c1", UserID: "owner", IsOwner: true}, UpdateChurchInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteChurchOwnerOnly(t *testing.T) {
	repo := newFakeChurchRepo()
	seedChurch(repo, "c1", "owner")
	svc := NewService(repo)

	err := svc.DeleteChurch(context.Background(), Access{ChurchID: "c1", UserID: "admin", Role: RoleAdmin})
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteChurch(context.Background(), Access{ChurchID: "c1", UserID: "owner", IsOwner: true}))
	assert.Empty(t, repo.churches)
}

func TestMemberManagement(t *testing.T) {
	repo := newFakeChurchRepo()
	seedChurch(repo, "c1", "owner")
	repo.members[memberKey("c1", "owner")] = &Membership{ChurchID: "c1", UserID: "owner", Role: RoleAdmin}
	repo.members[memberKey("c1", "u2")] = &Membership{ChurchID: "c1", UserID: "u2", Role: RoleMember}
	svc := NewService(repo)
	ctx := context.Background()
	admin := Access{ChurchID: "c1", UserID: "owner", IsOwner: true, Role: RoleAdmin}

	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, admin, "owner", RoleMember), ErrOwnerRoleFixed)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, admin, "u2", "bishop"), ErrInvalidRole)
	assert.ErrorIs(t, svc.UpdateMemberRole(ctx, admin, "ghost", RoleTeacher), ErrMemberNotFound)
	require.NoError(t, svc.UpdateMemberRole(ctx, admin, "u2", RoleTeacher))
	assert.Equal(t, RoleTeacher, repo.members[memberKey("c1", "u2")].Role)

	members, err := svc.ListMembers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.True(t, members[0].IsOwner)
	assert.False(t, members[1].IsOwner)

	member := Access{ChurchID: "c1", UserID: "u2", Role: RoleTeacher}
	assert.ErrorIs(t, svc.RemoveMember(ctx, member, "owner"), ErrForbidden)
	assert.ErrorIs(t, svc.RemoveMember(ctx, admin, "owner"), ErrCannotRemoveOwner)
	assert.ErrorIs(t, svc.Leave(ctx, admin), ErrOwnerCannotLeave)

	require.NoError(t, svc.Leave(ctx, member))
	assert.ErrorIs(t, svc.RemoveMember(ctx, admin, "u2"), ErrMemberNotFound)
}
