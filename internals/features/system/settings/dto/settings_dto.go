package dto

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"readingroom_backend/internals/features/system/settings/model"
	helper "readingroom_backend/internals/helpers"
	"readingroom_backend/internals/helpers/dbtime"
)

type UpdateSettingsRequest struct {
	RoomName     *string `json:"room_name" validate:"omitempty,min=1,max=100"`
	OpeningTime  *string `json:"opening_time" validate:"omitempty,datetime=15:04"`
	ClosingTime  *string `json:"closing_time" validate:"omitempty,datetime=15:04"`
	Currency     *string `json:"currency" validate:"omitempty,len=3"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=30"`
}

// ToPatch checks opening < closing using the stored value for whichever side is missing.
func (r UpdateSettingsRequest) ToPatch(currentOpen, currentClose string) (bson.M, error) {
	patch := bson.M{}
	open, closing := currentOpen, currentClose
	if r.RoomName != nil {
		patch["room_name"] = strings.TrimSpace(*r.RoomName)
	}
	if r.OpeningTime != nil {
		open = *r.OpeningTime
		patch["opening_time"] = open
	}
	if r.ClosingTime != nil {
		closing = *r.ClosingTime
		patch["closing_time"] = closing
	}
	if r.Currency != nil {
		patch["currency"] = strings.ToUpper(*r.Currency)
	}
	if r.ContactPhone != nil {
		patch["contact_phone"] = strings.TrimSpace(*r.ContactPhone)
	}

	if r.OpeningTime != nil || r.ClosingTime != nil {
		fe := helper.FieldErrors{}
		o, oerr := dbtime.Parse(open)
		c, cerr := dbtime.Parse(closing)
		switch {
		case oerr != nil:
			fe.Add("opening_time", oerr.Error())
		case cerr != nil:
			fe.Add("closing_time", cerr.Error())
		case !o.Before(c):
			fe.Add("closing_time", "closing_time must be after opening_time")
		}
		if len(fe) > 0 {
			return nil, fe
		}
	}
	return patch, nil
}

type SettingsResponse struct {
	*model.SettingsModel
	IsOpenNow bool `json:"is_open_now"`
}

// NewSettingsResponse flags whether now lies inside the opening hours.
// Unparseable stored hours count as closed.
func NewSettingsResponse(s *model.SettingsModel, now time.Time) SettingsResponse {
	resp := SettingsResponse{SettingsModel: s}
	open, oerr := dbtime.Parse(s.OpeningTime)
	closing, cerr := dbtime.Parse(s.ClosingTime)
	if oerr == nil && cerr == nil {
		resp.IsOpenNow = dbtime.Within(now, open, closing)
	}
	return resp
}
