package watch

import (
	"io/ioutil"
	"testing"
	"time"

	"github.com/rjeczalik/notify"
	"github.com/thatguystone/cog/check"
	"github.com/thatguystone/uglify/internal/testutil"
)

type fakeEvent struct {
	path string
}

func (ev fakeEvent) Event() notify.Event { return notify.Write }
func (ev fakeEvent) Path() string        { return ev.path }
func (ev fakeEvent) Sys() interface{}    { return nil }

func TestEventsHasExt(t *testing.T) {
	c := check.New(t)

	evs := Events{
		fakeEvent{"/a/app.js"},
		fakeEvent{"/a/site.css"},
	}

	c.True(evs.HasExt(".js"))
	c.True(evs.HasExt(".ts", ".css"))
	c.False(evs.HasExt(".ts"))
	c.False(Events(nil).HasExt(".js"))
}

func TestEventsPaths(t *testing.T) {
	c := check.New(t)

	evs := Events{
		fakeEvent{"/b.js"},
		fakeEvent{"/a.js"},
		fakeEvent{"/b.js"},
	}

	c.Equal(evs.Paths(), []string{"/a.js", "/b.js"})
}

func TestWatchChange(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, map[string]string{
		"src/app.js": "var a = 1;",
	})
	defer tmp.Remove()

	w, err := New(tmp.Path("src"))
	c.Must.Nil(err)
	defer w.Stop()

	changed := make(chan Events, 1)
	w.Notify(WatcherFunc(func(evs Events) {
		select {
		case changed <- evs:
		default:
		}
	}))

	err = ioutil.WriteFile(tmp.Path("src/app.js"), []byte("var a = 2;"), 0640)
	c.Must.Nil(err)

	select {
	case evs := <-changed:
		c.True(evs.HasExt(".js"))
	case <-time.After(5 * time.Second):
		c.Fatal("no change seen")
	}
}

func TestWatchMissingDir(t *testing.T) {
	c := check.New(t)

	tmp := testutil.NewTmpDir(c, nil)
	defer tmp.Remove()

	_, err := New(tmp.Path("nope"))
	c.NotNil(err)
}
