package explorer

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name  string
	calls int
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := NewApp()

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)

	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	require.Panics(t, func() {
		app.addResources(MockResource2{name: "by value"})
	}, "non-pointer resources are rejected")

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_bindResolvesResourcesOnce(t *testing.T) {
	app := NewApp()
	r1 := NewMockResource1("r1")
	app.addResources(r1, NewMockResource2("r2"))

	app.UseSystem(System(func(a *MockResource1, b *MockResource2, cmd *Commands) {
		a.calls++
		assert.NotNil(t, cmd)
	}))
	require.NoError(t, app.build())

	app.Tick(time.Millisecond)
	app.Tick(time.Millisecond)

	assert.Equal(t, 2, r1.calls)
	assert.Equal(t, uint64(2), app.Frame())
}

func TestApp_buildReportsMissingResource(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(a *MockResource1) {}))
	app.UseSystem(System(func(b *MockResource2) {}))

	err := app.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedDependency)
	assert.Contains(t, err.Error(), "MockResource1")
	assert.Contains(t, err.Error(), "MockResource2")

	// an unbuilt app never runs
	app.Tick(time.Millisecond)
	assert.Equal(t, uint64(0), app.Frame())
}

func TestApp_buildRejectsNonPointerArgs(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("r1"))
	app.UseSystem(System(func(a MockResource1) {}))

	assert.Error(t, app.build())
}

func TestApp_stagesRunInOrder(t *testing.T) {
	app := NewApp()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("sync")).InStage(Sync))
	app.UseSystem(System(record("post")).InStage(PostUpdate))
	app.UseSystem(System(record("update")))
	app.UseSystem(System(record("pre")).InStage(PreUpdate))

	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))
	app.UseSystem(System(record("custom")).InStage(custom))

	require.NoError(t, app.build())
	app.Tick(time.Millisecond)

	assert.Equal(t, []string{"pre", "update", "custom", "post", "sync"}, order)
}

func TestApp_UseSystemUnknownStagePanics(t *testing.T) {
	app := NewApp()
	assert.Panics(t, func() {
		app.UseSystem(System(func() {}).InStage(Stage{Name: "Nope"}))
	})
}

func TestApp_CloseRunsTeardownInReverse(t *testing.T) {
	app := NewApp()
	var order []int
	for i := 1; i <= 3; i++ {
		app.onTeardown(func() { order = append(order, i) })
	}
	app.onTeardown(func() { panic("boom") })
	app.onTeardown(func() { order = append(order, 5) })

	app.Close()
	app.Close()

	assert.Equal(t, []int{5, 3, 2, 1}, order, "teardown runs once, in reverse, past a panic")
	assert.True(t, app.Closed())

	ran := false
	app.onTeardown(func() { ran = true })
	assert.True(t, ran, "teardown registered after close runs immediately")
}

func TestApp_TickAdvancesTime(t *testing.T) {
	app := NewApp()
	app.addResources(&Time{MaxDt: 50 * time.Millisecond})
	require.NoError(t, app.build())

	app.Tick(20 * time.Millisecond)
	app.Tick(time.Second)
	app.Tick(-time.Second)

	tm, ok := Resource[Time](app)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), tm.Dt)
	assert.Equal(t, 70*time.Millisecond, tm.Elapsed)
	assert.Equal(t, uint64(3), tm.Frame)
}

func TestApp_LoggerNeverNil(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
	assert.NotNil(t, NewApp().Logger())
}
