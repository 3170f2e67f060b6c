package explorer

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// OnTeardown registers fn to run when the app is closed. If the app is already
// closed fn runs immediately.
func (cmd *Commands) OnTeardown(fn func()) *Commands {
	cmd.app.onTeardown(fn)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
