package main

import "github.com/ilovedelay/i-love-delay/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenLocalStore()
	defer app.CloseLocalStore()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustInitServices()
	app.MustEnsureFeedSchema()

	stopSweep := app.StartOverdueSweep()
	defer stopSweep()

	app.MustListenAndServeHTTP()
}
