package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("Then root should redirect to the index page", func() {
			w := serve(mux, "GET", "/")
			So(w.Code, ShouldEqual, http.StatusTemporaryRedirect)
			So(w.Header().Get("Location"), ShouldEqual, "/static/index.html")
		})

		Convey("And the index page should be served as HTML", func() {
			w := serve(mux, "GET", "/static/index.html")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "Mergington High School")
		})

		Convey("And the script and stylesheet should be served", func() {
			So(serve(mux, "GET", "/static/app.js").Code, ShouldEqual, http.StatusOK)
			css := serve(mux, "GET", "/static/styles.css")
			So(css.Code, ShouldEqual, http.StatusOK)
			So(css.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("And missing assets should be not found", func() {
			So(serve(mux, "GET", "/static/missing.js").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And other root paths should not be handled", func() {
			So(serve(mux, "GET", "/some-asset").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And posting to root should not redirect", func() {
			So(serve(mux, "POST", "/").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		Convey("Then ErrServe should be defined", func() {
			So(ErrServe, ShouldNotBeNil)
			So(ErrServe.Error(), ShouldEqual, "site serve failed")
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("When registering the site handler", func() {
			Convey("Then it should panic", func() {
				So(func() {
					Register(context.Background(), nil)
				}, ShouldPanic)
			})
		})
	})
}
