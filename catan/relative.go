package catan

// RelativeID returns the distance, modulo player count, from observer
// to p. An observer always sees itself at offset 0, the next seat in
// turn order at offset 1, and so on. Encodings keyed by relative offset
// are seat-agnostic: rotating every seat id by a constant leaves them
// unchanged.
func RelativeID(observer, p PlayerId, players uint8) uint8 {
	return uint8((int(p) - int(observer) + int(players)) % int(players))
}

// OffsetToPlayer inverts RelativeID: it returns the absolute seat id
// sitting at the given relative offset from observer.
func OffsetToPlayer(observer PlayerId, offset uint8, players uint8) PlayerId {
	return PlayerId((uint8(observer) + offset) % players)
}
