// Package api serves the Smart Mario REST API.
//
// Endpoints:
//
//	GET    /api/health                    status and version
//	POST   /api/sessions                  {"config_id": "classic"} (empty body: default level)
//	GET    /api/sessions                  ?sort=created|accessed&order=asc|desc&limit=N&config=ID
//	GET    /api/sessions/{id}
//	DELETE /api/sessions/{id}
//	GET    /api/sessions/{id}/state
//	POST   /api/sessions/{id}/move        {"direction": "right|down", "reset": false}
//	POST   /api/sessions/{id}/bulk-move   {"moves": ["right", "down"], "reset": false}
//	POST   /api/sessions/{id}/reset
//	GET    /api/sessions/{id}/history     ?page=1&limit=20&order=desc
//	GET    /api/sessions/{id}/solution    409 while the round is running
//	GET    /api/configs
//	POST   /api/configs                   a level document, optional "config_id"
//	GET    /api/configs/{name}
//	POST   /api/solve                     {"layout": [".M.", "..M", "..."]}
//	GET    /ws?session={id}               live updates
//	GET    /metrics                       Prometheus
//
// Errors are JSON objects with a single "error" field. Unknown sessions and
// levels answer 404, malformed bodies and grids 400.
//
// States of a running round never include optimal_path; the solution
// endpoint reveals it once the round is over.
package api
