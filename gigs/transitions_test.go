package gigs

import (
	"testing"
	"time"

	"encore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVerb(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		gig     models.Gig
		verb    string
		want    map[string]interface{}
		wantErr string
	}{
		{
			name: "accept pending inbound invite",
			gig:  models.Gig{Direction: "inbound", BookingStatus: models.GigPending},
			verb: VerbAcceptInvite,
			want: map[string]interface{}{"booking_status": models.GigConfirmed},
		},
		{
			name:    "accept outbound request is rejected",
			gig:     models.Gig{Direction: "outbound", BookingStatus: models.GigPending},
			verb:    VerbAcceptInvite,
			wantErr: "Only venue invites can be accepted",
		},
		{
			name:    "accept already confirmed invite is rejected",
			gig:     models.Gig{Direction: "inbound", BookingStatus: models.GigConfirmed},
			verb:    VerbAcceptInvite,
			wantErr: "This invite is no longer pending",
		},
		{
			name: "decline pending inbound invite",
			gig:  models.Gig{Direction: "inbound", BookingStatus: models.GigPending},
			verb: VerbDeclineInvite,
			want: map[string]interface{}{"booking_status": models.GigCancelled},
		},
		{
			name: "cancel pending outbound request",
			gig:  models.Gig{Direction: "outbound", BookingStatus: models.GigPending},
			verb: VerbCancelRequest,
			want: map[string]interface{}{"booking_status": models.GigCancelled},
		},
		{
			name:    "cancel inbound invite is rejected",
			gig:     models.Gig{Direction: "inbound", BookingStatus: models.GigPending},
			verb:    VerbCancelRequest,
			wantErr: "Only outbound requests can be cancelled",
		},
		{
			name: "complete confirmed gig",
			gig:  models.Gig{Direction: "inbound", BookingStatus: models.GigConfirmed},
			verb: VerbMarkCompleted,
			want: map[string]interface{}{"booking_status": models.GigCompleted},
		},
		{
			name:    "complete pending gig is rejected",
			gig:     models.Gig{BookingStatus: models.GigPending},
			verb:    VerbMarkCompleted,
			wantErr: "Only confirmed gigs can be completed",
		},
		{
			name: "publish draft gig",
			gig:  models.Gig{BookingStatus: models.GigConfirmed, PublishStatus: models.GigDraft},
			verb: VerbPublishNow,
			want: map[string]interface{}{"publish_status": models.GigPublished},
		},
		{
			name:    "publish already published gig is rejected",
			gig:     models.Gig{PublishStatus: models.GigPublished},
			verb:    VerbPublishNow,
			wantErr: "Gig is already published",
		},
		{
			name:    "publish cancelled gig is rejected",
			gig:     models.Gig{BookingStatus: models.GigCancelled, PublishStatus: models.GigDraft},
			verb:    VerbPublishNow,
			wantErr: "Cancelled gigs cannot be published",
		},
		{
			name:    "unknown verb",
			gig:     models.Gig{},
			verb:    "explode",
			wantErr: "Unknown action: explode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := applyVerb(tt.gig, tt.verb, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			for k, v := range tt.want {
				assert.Equal(t, v, update[k])
			}
			assert.Equal(t, now, update["updated_at"])
		})
	}
}

func TestMergeWarning(t *testing.T) {
	assert.Empty(t, mergeWarning(nil))
	assert.Empty(t, mergeWarning([]models.Gig{{MergeStatus: "merged"}, {MergeStatus: ""}}))

	assert.NotEmpty(t, mergeWarning([]models.Gig{{MergeStatus: "unresolved"}}))
	assert.NotEmpty(t, mergeWarning([]models.Gig{{MergeStatus: "merged"}, {MergeStatus: "conflict"}}))
}
