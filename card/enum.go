package card

const (
	CardInvalid Card = 0
)

// Club
const (
	CardClub9 Card = iota + 0x01
	CardClubT
	CardClubJ
	CardClubQ
	CardClubK
	CardClubA
)

// Diamond
const (
	CardDiamond9 Card = iota + 0x11
	CardDiamondT
	CardDiamondJ
	CardDiamondQ
	CardDiamondK
	CardDiamondA
)

// Spade
const (
	CardSpade9 Card = iota + 0x21
	CardSpadeT
	CardSpadeJ
	CardSpadeQ
	CardSpadeK
	CardSpadeA
)

// Heart
const (
	CardHeart9 Card = iota + 0x31
	CardHeartT
	CardHeartJ
	CardHeartQ
	CardHeartK
	CardHeartA
)

// EuchreCards is the full 24-card euchre deck.
var EuchreCards = []Card{
	CardClub9, CardClubT, CardClubJ, CardClubQ, CardClubK, CardClubA,
	CardDiamond9, CardDiamondT, CardDiamondJ, CardDiamondQ, CardDiamondK, CardDiamondA,
	CardSpade9, CardSpadeT, CardSpadeJ, CardSpadeQ, CardSpadeK, CardSpadeA,
	CardHeart9, CardHeartT, CardHeartJ, CardHeartQ, CardHeartK, CardHeartA,
}
