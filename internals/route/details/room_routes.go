package details

import (
	"github.com/gofiber/fiber/v2"

	"readingroom_backend/internals/appctx"
	bookingRoute "readingroom_backend/internals/features/rooms/bookings/route"
	seatRoute "readingroom_backend/internals/features/rooms/seats/route"
)

func RoomRoutes(api fiber.Router, ctx *appctx.Context) {
	seatRoute.SeatRoutes(api, ctx)
	bookingRoute.BookingRoutes(api, ctx)
}
