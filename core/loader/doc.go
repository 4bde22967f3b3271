// Package loader registers and mounts the service's features.
//
// Each feature implements Feature: it reports its name, whether it is enabled
// and mounts its routes on a fiber.Router. The Manager keeps the registry and
// loads every enabled feature in registration order.
//
//	mgr := loader.NewManager()
//	mgr.Register(reconcile.NewFeature(svc, logg))
//	if err := mgr.LoadAll(app); err != nil {
//	    logg.Fatal("Failed to load features", zap.Error(err))
//	}
package loader
