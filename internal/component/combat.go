package component

import "github.com/Philser/roguelike/internal/ecs"

const CCombatStats ecs.ComponentType = 2

// CombatStats holds hit points and melee numbers. Defense is carried but not
// subtracted from incoming damage.
type CombatStats struct {
	HP, MaxHP int
	Defense   int
	Power     int
}

func (CombatStats) Type() ecs.ComponentType { return CCombatStats }

// Hurt lowers HP by amount, never below zero.
func (c *CombatStats) Hurt(amount int) {
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
}

// Heal raises HP by amount, never above MaxHP.
func (c *CombatStats) Heal(amount int) {
	c.HP += amount
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
}

// Dead reports whether HP has run out.
func (c CombatStats) Dead() bool { return c.HP <= 0 }
