package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	repository "github.com/okian/mergington/internal/adapters/repository"
	service "github.com/okian/mergington/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpErrors(t *testing.T) {
	Convey("Given wrapped API errors", t, func() {
		Convey("Wrap should keep the cause reachable", func() {
			err := Wrap("api.signup", repository.ErrNotFound)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.signup: activity not found")
			So(Wrap("api.signup", nil), ShouldBeNil)
		})

		Convey("WrapKind should match both kind and cause", func() {
			err := WrapKind("api.signup", ErrValidation, service.ErrMissingEmail)
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
			So(errors.Is(err, service.ErrMissingEmail), ShouldBeTrue)
		})

		Convey("detailOf should strip the operation chain", func() {
			err := Wrap("api.unregister", fmt.Errorf("unregister %q: %w", "Art Club", repository.ErrNotSignedUp))
			So(detailOf(err), ShouldEqual, "student is not signed up for this activity")
			So(detailOf(errors.New("boom")), ShouldEqual, "boom")
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Given domain errors", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{repository.ErrNotFound, http.StatusNotFound, "not_found"},
			{repository.ErrAlreadySignedUp, http.StatusBadRequest, "already_signed_up"},
			{repository.ErrNotSignedUp, http.StatusBadRequest, "not_signed_up"},
			{repository.ErrActivityFull, http.StatusBadRequest, "activity_full"},
			{service.ErrMissingEmail, http.StatusUnprocessableEntity, "validation_error"},
			{service.ErrNotStarted, http.StatusServiceUnavailable, "unavailable"},
			{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}

		Convey("Each should map to its status and code", func() {
			for _, tc := range cases {
				status, code := classify(fmt.Errorf("wrapped: %w", tc.err))
				So(status, ShouldEqual, tc.status)
				So(code, ShouldEqual, tc.code)
			}
		})
	})
}
