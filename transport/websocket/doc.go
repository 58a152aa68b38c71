// Package websocket pushes Smart Mario session updates to browsers.
//
// A Hub groups connections by session id. Clients connect with
// /ws?session=<id> and only receive; every frame is one JSON Message:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Events are state_update after moves, reset after a new round,
// round_over on victory and timeout when the move timer ends a round.
//
// The hub's client maps are owned by the Run goroutine; registration,
// removal and broadcasts all travel over channels.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
package websocket
