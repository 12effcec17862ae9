package mysql

const insertEventSQL = `
INSERT INTO hotel_events
  (id, kind, guest_id, room_id, staff_id, amount, payload, occurred_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Newest first; seq breaks ties between events in the same microsecond.
const recentEventsSQL = `
SELECT id, kind, guest_id, room_id, staff_id, amount, payload, occurred_at
FROM hotel_events
ORDER BY seq DESC
LIMIT ?
`
