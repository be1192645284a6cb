package cpu

import "github.com/Xander-Br/dmg-emulator/bit"

// primaryTable and cbTable are 256-entry, fully populated dispatch arrays
// (spec.md section 4.9's "Instruction coverage" requirement and the
// Design Note on replacing map-based dispatch with array dispatch). Every
// entry is assigned either to one of the hand-written functions in
// opcodes.go, or generated here from the LR35902's own regular field
// encodings (LD r,r'; 8-bit ALU A,r; INC/DEC r; PUSH/POP rr; RST n; and the
// whole CB-prefixed table), rather than written out opcode by opcode.
var (
	primaryTable [256]opcodeFunc
	cbTable      [256]opcodeFunc
)

func init() {
	registerHandWrittenPrimary()
	generateLoadRegisterToRegister()
	generateLoadRegisterImmediate()
	generateIncDecRegister()
	generateALURegister()
	generatePushPop()
	generateRST()
	generateCBTable()
}

func registerHandWrittenPrimary() {
	handWritten := map[uint8]opcodeFunc{
		0x00: opcode0x00, 0x01: opcode0x01, 0x02: opcode0x02, 0x03: opcode0x03,
		0x07: opcode0x07, 0x08: opcode0x08, 0x09: opcode0x09, 0x0A: opcode0x0A,
		0x0B: opcode0x0B, 0x0F: opcode0x0F,
		0x10: opcode0x10, 0x11: opcode0x11, 0x12: opcode0x12, 0x13: opcode0x13,
		0x17: opcode0x17, 0x18: opcode0x18, 0x19: opcode0x19, 0x1A: opcode0x1A,
		0x1B: opcode0x1B, 0x1F: opcode0x1F,
		0x20: opcode0x20, 0x21: opcode0x21, 0x22: opcode0x22, 0x23: opcode0x23,
		0x27: opcode0x27, 0x28: opcode0x28, 0x29: opcode0x29, 0x2A: opcode0x2A,
		0x2B: opcode0x2B, 0x2F: opcode0x2F,
		0x30: opcode0x30, 0x31: opcode0x31, 0x32: opcode0x32, 0x33: opcode0x33,
		0x37: opcode0x37, 0x38: opcode0x38, 0x39: opcode0x39, 0x3A: opcode0x3A,
		0x3B: opcode0x3B, 0x3F: opcode0x3F,
		0x76: opcode0x76,
		0xC0: opcode0xC0, 0xC2: opcode0xC2, 0xC3: opcode0xC3, 0xC4: opcode0xC4,
		0xC6: opcode0xC6, 0xC8: opcode0xC8, 0xC9: opcode0xC9, 0xCA: opcode0xCA,
		0xCB: opcode0xCB, 0xCC: opcode0xCC, 0xCD: opcode0xCD, 0xCE: opcode0xCE,
		0xD0: opcode0xD0, 0xD2: opcode0xD2, 0xD3: illegalOpcode, 0xD4: opcode0xD4,
		0xD6: opcode0xD6, 0xD8: opcode0xD8, 0xD9: opcode0xD9, 0xDA: opcode0xDA,
		0xDB: illegalOpcode, 0xDC: opcode0xDC, 0xDD: illegalOpcode, 0xDE: opcode0xDE,
		0xE0: opcode0xE0, 0xE2: opcode0xE2, 0xE3: illegalOpcode, 0xE4: illegalOpcode,
		0xE6: opcode0xE6, 0xE8: opcode0xE8, 0xE9: opcode0xE9, 0xEA: opcode0xEA,
		0xEB: illegalOpcode, 0xEC: illegalOpcode, 0xED: illegalOpcode, 0xEE: opcode0xEE,
		0xF0: opcode0xF0, 0xF2: opcode0xF2, 0xF3: opcode0xF3, 0xF4: illegalOpcode,
		0xF6: opcode0xF6, 0xF8: opcode0xF8, 0xF9: opcode0xF9, 0xFA: opcode0xFA,
		0xFB: opcode0xFB, 0xFC: illegalOpcode, 0xFD: illegalOpcode, 0xFE: opcode0xFE,
	}

	for opcode, fn := range handWritten {
		primaryTable[opcode] = fn
	}
}

// generateLoadRegisterToRegister fills 0x40-0x7F (LD r,r'), the 3-bit
// destination field in bits 5-3 and the source field in bits 2-0, in the
// hardware's own (B,C,D,E,H,L,(HL),A) register order. 0x76, which the
// encoding would otherwise assign to LD (HL),(HL), is HALT instead and is
// left to the hand-written table.
func generateLoadRegisterToRegister() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}

			dst, src := dst, src
			cycles := 4
			if dst == 6 || src == 6 {
				cycles = 8
			}

			primaryTable[opcode] = func(c *CPU) int {
				c.writeReg8(dst, c.readReg8(src))
				return cycles
			}
		}
	}
}

// generateLoadRegisterImmediate fills 0x06, 0x0E, ..., 0x3E (LD r,n).
func generateLoadRegisterImmediate() {
	for r := uint8(0); r < 8; r++ {
		opcode := 0x06 + r*8
		r := r
		cycles := 8
		if r == 6 {
			cycles = 12
		}

		primaryTable[opcode] = func(c *CPU) int {
			c.writeReg8(r, c.readImmediate())
			return cycles
		}
	}
}

// generateIncDecRegister fills 0x04/0x05, 0x0C/0x0D, ..., 0x3C/0x3D (the
// 8-bit INC/DEC r family; 16-bit INC/DEC rr are hand-written since they
// don't share this field layout).
func generateIncDecRegister() {
	for r := uint8(0); r < 8; r++ {
		incOpcode := 0x04 + r*8
		decOpcode := 0x05 + r*8
		r := r
		cycles := 4
		if r == 6 {
			cycles = 12
		}

		primaryTable[incOpcode] = func(c *CPU) int {
			c.modifyReg8(r, c.inc)
			return cycles
		}
		primaryTable[decOpcode] = func(c *CPU) int {
			c.modifyReg8(r, c.dec)
			return cycles
		}
	}
}

// aluOps is the hardware's own ordering of the 8-bit ALU group (bits 5-3 of
// 0x80-0xBF and of the C6/CE/.../FE immediate opcodes).
var aluOps = [8]func(*CPU, uint8){
	(*CPU).add, (*CPU).adc, (*CPU).sub, (*CPU).sbc,
	(*CPU).and, (*CPU).xor, (*CPU).or, (*CPU).cp,
}

// generateALURegister fills 0x80-0xBF (ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r).
func generateALURegister() {
	for op := uint8(0); op < 8; op++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0x80 + op*8 + operand
			op, operand := op, operand
			cycles := 4
			if operand == 6 {
				cycles = 8
			}

			primaryTable[opcode] = func(c *CPU) int {
				aluOps[op](c, c.readReg8(operand))
				return cycles
			}
		}
	}
}

var pairGetters = [4]func(*CPU) uint16{
	(*CPU).getBC, (*CPU).getDE, (*CPU).getHL, (*CPU).getAF,
}

var pairSetters = [4]func(*CPU, uint16){
	(*CPU).setBC, (*CPU).setDE, (*CPU).setHL, (*CPU).setAF,
}

// generatePushPop fills PUSH BC/DE/HL/AF (0xC5/0xD5/0xE5/0xF5) and POP
// BC/DE/HL/AF (0xC1/0xD1/0xE1/0xF1).
func generatePushPop() {
	for k := uint8(0); k < 4; k++ {
		pushOpcode := 0xC5 + k*0x10
		popOpcode := 0xC1 + k*0x10
		k := k

		primaryTable[pushOpcode] = func(c *CPU) int {
			c.pushStack(pairGetters[k](c))
			return 16
		}
		primaryTable[popOpcode] = func(c *CPU) int {
			pairSetters[k](c, c.popStack())
			return 12
		}
	}
}

// generateRST fills RST 0x00, 0x08, ..., 0x38 (0xC7, 0xCF, ..., 0xFF).
func generateRST() {
	for k := uint8(0); k < 8; k++ {
		opcode := 0xC7 + k*8
		vector := uint16(k) * 8

		primaryTable[opcode] = func(c *CPU) int {
			c.pushStack(c.pc)
			c.pc = vector
			return 16
		}
	}
}

// cbRotateOps is the hardware ordering of the CB rotate/shift group
// (0x00-0x3F).
var cbRotateOps = [8]func(*CPU, *uint8){
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
}

// generateCBTable fills every one of the 256 CB-prefixed opcodes: the
// rotate/shift group (0x00-0x3F), BIT b,r (0x40-0x7F), RES b,r (0x80-0xBF)
// and SET b,r (0xC0-0xFF), each crossed over the 8 operands (B, C, D, E, H,
// L, (HL), A). spec.md section 4.9 gives (HL) operands a 12-cycle cost
// uniformly rather than real SM83's per-family timings.
func generateCBTable() {
	for group := uint8(0); group < 8; group++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := group*8 + operand
			group, operand := group, operand
			cycles := cbCycles(operand)

			cbTable[opcode] = func(c *CPU) int {
				c.modifyReg8(operand, func(r *uint8) { cbRotateOps[group](c, r) })
				return cycles
			}
		}
	}

	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0x40 + bitIndex*8 + operand
			bitIndex, operand := bitIndex, operand
			cycles := cbCycles(operand)

			cbTable[opcode] = func(c *CPU) int {
				c.bitTest(bitIndex, c.readReg8(operand))
				return cycles
			}
		}
	}

	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0x80 + bitIndex*8 + operand
			bitIndex, operand := bitIndex, operand
			cycles := cbCycles(operand)

			cbTable[opcode] = func(c *CPU) int {
				c.writeReg8(operand, bit.Reset(bitIndex, c.readReg8(operand)))
				return cycles
			}
		}
	}

	for bitIndex := uint8(0); bitIndex < 8; bitIndex++ {
		for operand := uint8(0); operand < 8; operand++ {
			opcode := 0xC0 + bitIndex*8 + operand
			bitIndex, operand := bitIndex, operand
			cycles := cbCycles(operand)

			cbTable[opcode] = func(c *CPU) int {
				c.writeReg8(operand, bit.Set(bitIndex, c.readReg8(operand)))
				return cycles
			}
		}
	}
}

func cbCycles(operand uint8) int {
	if operand == 6 {
		return 12
	}
	return 8
}
