package model_test

import (
	"testing"

	model "github.com/okian/mergington/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	convey.Convey("Given an Activity with two participants", t, func() {
		a := model.Activity{
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 2,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}

		convey.Convey("When checking membership", func() {
			convey.Convey("Then exact emails should match", func() {
				convey.So(a.HasParticipant("michael@mergington.edu"), convey.ShouldBeTrue)
			})

			convey.Convey("And a different case should not match", func() {
				convey.So(a.HasParticipant("Michael@mergington.edu"), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When checking capacity", func() {
			convey.So(a.IsFull(), convey.ShouldBeTrue)
			convey.So(a.SpotsLeft(), convey.ShouldEqual, 0)
		})

		convey.Convey("When cloning", func() {
			c := a.Clone()
			c.Participants[0] = "someone@mergington.edu"

			convey.Convey("Then the original should be untouched", func() {
				convey.So(a.Participants[0], convey.ShouldEqual, "michael@mergington.edu")
				convey.So(c.Description, convey.ShouldEqual, a.Description)
			})
		})
	})

	convey.Convey("Given an Activity with zero capacity", t, func() {
		a := model.Activity{Participants: []string{"a@mergington.edu"}}

		convey.Convey("Then it should never report full", func() {
			convey.So(a.IsFull(), convey.ShouldBeFalse)
			convey.So(a.SpotsLeft(), convey.ShouldEqual, 0)
		})
	})

	convey.Convey("Given an Activity with nil participants", t, func() {
		a := model.Activity{MaxParticipants: 3}

		convey.Convey("Then Clone should return an empty, non-nil list", func() {
			c := a.Clone()
			convey.So(c.Participants, convey.ShouldNotBeNil)
			convey.So(c.Participants, convey.ShouldBeEmpty)
			convey.So(c.SpotsLeft(), convey.ShouldEqual, 3)
		})
	})
}
