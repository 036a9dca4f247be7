package docs

// @title           Storefront Service API
// @version         1.0
// @description     Storefront service manages the delivery pin board, bulk imports, delivery history, and customer cart orders. Destructive pin actions require a PIN unlock token.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the unlock token from /auth/unlock.
