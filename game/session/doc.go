// Package session keeps Smart Mario game sessions.
//
// A Manager holds sessions in memory keyed by a short case-insensitive id
// (four hex digits when generated). Each session owns one engine and
// records the level id it was created from.
//
// With a SessionPersistence attached, sessions are written on creation and
// on Save, and sessions missing from memory are loaded on demand. The
// FilePersistence implementation writes one JSON file per session and
// restores the exact round, including an unfinished one, on load.
//
// Usage:
//
//	store, _ := session.NewFilePersistence("sessions", configMgr)
//	manager := session.NewManagerWithPersistence(store)
//	manager.LoadPersistedSessions()
//
//	sess, err := manager.Create("", "classic", configMgr.GetDefault())
//	if err != nil {
//		log.Fatal(err)
//	}
package session
