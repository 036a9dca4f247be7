package docs

// @title           Navigator Service API
// @version         1.0
// @description     Navigator service streams driver positions in over WebSocket and answers with turn-by-turn guidance frames. Routes are computed against an OSRM-compatible routing backend with automatic drift rerouting.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3001
// @BasePath  /
