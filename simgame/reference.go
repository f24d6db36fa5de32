package simgame

// Reference is a minimal, deterministic Simulator good enough to exercise
// agents end to end: two bases, a handful of neutral resource deposits, and
// four unit kinds with fixed combat/economy rules. It is not a claim of
// parity with any production RTS engine; it treats the rules engine as an
// external collaborator whose interface, not implementation, matters.
type Reference struct {
	state GameState
	nextID int
	tickCap int
	attackHP map[UnitKind]int
	costOf map[UnitKind]int
}

// ReferenceConfig seeds a Reference simulator's starting layout.
type ReferenceConfig struct {
	Width, Height int
	TickCap int
}

// NewReference builds a two-base, symmetric starting position: one
// stockpile (base) and one producer (barracks) per side, two harvesters
// each, and neutral resource deposits scattered between the bases.
func NewReference(cfg ReferenceConfig) *Reference {
	if cfg.Width == 0 {
		cfg.Width = 16
	}
	if cfg.Height == 0 {
		cfg.Height = 16
	}
	r := &Reference{
		tickCap: cfg.TickCap,
		attackHP: map[UnitKind]int{
			UnitHarvester: 1,
			UnitAttacker: 3,
			UnitStockpile: 0,
			UnitProducer: 0,
		},
		costOf: map[UnitKind]int{
			UnitHarvester: 1,
			UnitAttacker: 2,
			UnitStockpile: 10,
			UnitProducer: 5,
		},
	}
	r.state = GameState{Width: cfg.Width, Height: cfg.Height}

	r.spawn(Owner0, UnitStockpile, Point{1, 1}, 50)
	r.spawn(Owner0, UnitProducer, Point{2, 1}, 20)
	r.spawn(Owner0, UnitHarvester, Point{1, 2}, 5)
	r.spawn(Owner0, UnitHarvester, Point{2, 2}, 5)

	r.spawn(Owner1, UnitStockpile, Point{cfg.Width - 2, cfg.Height - 2}, 50)
	r.spawn(Owner1, UnitProducer, Point{cfg.Width - 3, cfg.Height - 2}, 20)
	r.spawn(Owner1, UnitHarvester, Point{cfg.Width - 2, cfg.Height - 3}, 5)
	r.spawn(Owner1, UnitHarvester, Point{cfg.Width - 3, cfg.Height - 3}, 5)

	mid := Point{cfg.Width / 2, cfg.Height / 2}
	r.spawn(OwnerNeutral, UnitStockpile, mid, 999)
	r.spawn(OwnerNeutral, UnitStockpile, Point{mid.X + 2, mid.Y - 2}, 999)
	r.spawn(OwnerNeutral, UnitStockpile, Point{mid.X - 2, mid.Y + 2}, 999)

	return r
}

func (r *Reference) spawn(owner Owner, kind UnitKind, pos Point, hp int) int {
	id := r.nextID
	r.nextID++
	r.state.Units = append(r.state.Units, Unit{
		ID: id, Owner: owner, Kind: kind, Pos: pos, HP: hp, MaxHP: hp,
		Cost: r.costOf[kind],
	})
	return id
}

func (r *Reference) State() *GameState { return &r.state }

// LegalActions enumerates every action a caller's policy prior needs to
// weigh: idle harvesters can move toward a resource or (if adjacent) harvest;
// laden harvesters can return to base; attackers can move or attack an
// enemy in range; producers can spend resources to build.
func (r *Reference) LegalActions(unitID int) []Action {
	u, ok := r.state.UnitByID(unitID)
	if !ok {
		return nil
	}
	var out []Action
	switch u.Kind {
	case UnitHarvester:
		if u.Carrying > 0 {
			out = append(out, Action{UnitID: unitID, Kind: ActionReturn})
		} else if pos, dist, found := r.state.NearestResource(u.Pos); found {
			if dist <= 1 {
				out = append(out, Action{UnitID: unitID, Kind: ActionHarvest, Target: pos})
			} else {
				out = append(out, Action{UnitID: unitID, Kind: ActionMove, Target: step(u.Pos, pos)})
			}
		}
	case UnitAttacker:
		if enemy, dist, found := r.state.NearestEnemy(u.Owner, u.Pos); found {
			if dist <= 1 {
				out = append(out, Action{UnitID: unitID, Kind: ActionAttack, Target: enemy.Pos})
			} else {
				out = append(out, Action{UnitID: unitID, Kind: ActionMove, Target: step(u.Pos, enemy.Pos)})
			}
		}
	case UnitProducer:
		if r.state.Resources[u.Owner] >= r.costOf[UnitHarvester] {
			out = append(out, Action{UnitID: unitID, Kind: ActionProduce, Param: "harvester"})
		}
		if r.state.Resources[u.Owner] >= r.costOf[UnitAttacker] {
			out = append(out, Action{UnitID: unitID, Kind: ActionProduce, Param: "attacker"})
		}
	case UnitStockpile:
		// Stockpiles never act; they are a prior-classification target only.
	}
	return out
}

func step(from, to Point) Point {
	d := Point{from.X, from.Y}
	if to.X > from.X {
		d.X++
	} else if to.X < from.X {
		d.X--
	}
	if to.Y > from.Y {
		d.Y++
	} else if to.Y < from.Y {
		d.Y--
	}
	return d
}

// AdvanceTick resolves both sides' joint action and advances one tick.
func (r *Reference) AdvanceTick(p0, p1 PlayerAction) {
	r.apply(p0)
	r.apply(p1)
	r.state.Tick++
}

func (r *Reference) apply(pa PlayerAction) {
	for _, a := range pa.Actions {
		idx := r.indexOf(a.UnitID)
		if idx < 0 {
			continue
		}
		u := &r.state.Units[idx]
		switch a.Kind {
		case ActionMove:
			u.Pos = a.Target
		case ActionHarvest:
			if didx := r.indexAt(a.Target, UnitStockpile); didx >= 0 {
				u.Carrying++
			}
		case ActionReturn:
			r.state.Resources[u.Owner] += u.Carrying
			u.Carrying = 0
		case ActionProduce:
			kind := UnitHarvester
			if a.Param == "attacker" {
				kind = UnitAttacker
			}
			cost := r.costOf[kind]
			if r.state.Resources[u.Owner] >= cost {
				r.state.Resources[u.Owner] -= cost
				r.spawn(u.Owner, kind, u.Pos, hpFor(kind))
			}
		case ActionAttack:
			if didx := r.indexAt(a.Target, -1); didx >= 0 {
				target := &r.state.Units[didx]
				if target.Owner != u.Owner && target.Owner != OwnerNeutral {
					target.HP -= r.attackHP[u.Kind]
				}
			}
		}
	}
	r.removeDead()
}

func hpFor(kind UnitKind) int {
	switch kind {
	case UnitAttacker:
		return 6
	default:
		return 5
	}
}

func (r *Reference) indexOf(id int) int {
	for i, u := range r.state.Units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// indexAt finds a unit at pos. If kind >= 0 it must also match kind.
func (r *Reference) indexAt(pos Point, kind UnitKind) int {
	for i, u := range r.state.Units {
		if u.Pos == pos && (kind < 0 || u.Kind == kind) {
			return i
		}
	}
	return -1
}

func (r *Reference) removeDead() {
	alive := r.state.Units[:0]
	for _, u := range r.state.Units {
		if u.HP > 0 {
			alive = append(alive, u)
		}
	}
	r.state.Units = alive
}

// Outcome reports win/draw/ongoing based on base survival and tick cap.
func (r *Reference) Outcome() Outcome {
	base0, base1 := false, false
	for _, u := range r.state.Units {
		if u.Kind == UnitStockpile && u.Owner == Owner0 {
			base0 = true
		}
		if u.Kind == UnitStockpile && u.Owner == Owner1 {
			base1 = true
		}
	}
	switch {
	case !base0 && !base1:
		return Outcome{Result: ResultDraw}
	case !base0:
		return Outcome{Result: ResultWin, Winner: Owner1}
	case !base1:
		return Outcome{Result: ResultWin, Winner: Owner0}
	}
	if r.tickCap > 0 && r.state.Tick >= r.tickCap {
		return Outcome{Result: ResultDraw}
	}
	return Outcome{Result: ResultOngoing}
}

// Clone deep-copies the simulator for MCTS lookahead.
func (r *Reference) Clone() Simulator {
	cp := *r
	cp.state.Units = append([]Unit(nil), r.state.Units...)
	cp.attackHP = cloneIntMap(r.attackHP)
	cp.costOf = cloneIntMap(r.costOf)
	return &cp
}

func cloneIntMap(m map[UnitKind]int) map[UnitKind]int {
	out := make(map[UnitKind]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
