// Package websocket streams maze games to browser clients.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id>. Each session has a Renderer, obtained from
// Hub.Presenter, which implements service.Presenter and turns every drawing
// call of the game into one JSON message:
//
//	{"session_id":"ab12","op":"grid","board":{...}}
//	{"session_id":"ab12","op":"token","token":{"x":0,"y":1,"victory":false}}
//	{"session_id":"ab12","op":"victory","token":{"x":9,"y":9,"victory":true}}
//	{"session_id":"ab12","op":"status","text":"Current Position: (0, 1)"}
//
// Several messages may be batched into one frame, separated by newlines.
// A client joining a running session first receives a grid message with the
// token in place and the current status text.
//
// Clients may send moves back:
//
//	{"action":"move","direction":"up"}
//	{"action":"move","key":"ArrowUp"}
//
// These are passed to the MoveHandler given with WithMoveHandler.
//
// Usage:
//
//	hub := websocket.NewHub(websocket.WithLogger(log))
//	go hub.Run(ctx)
//
//	svc := service.NewGameService(sessions, service.WithPresenters(hub.Presenter))
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// All session and client maps are owned by the Run goroutine. Presenter,
// CloseSession and ServeWS block until Run accepts the request, so Run must
// be started first.
package websocket
