// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for transfers
const transferTableSchema = `
create table if not exists transfer (
	seq integer,
	transferIndex integer,
	time integer,
	txID blob(32),
	txOrigin blob(32),
	sender blob(32),
	recipient blob(32),
	amount blob(8),
	unique (seq, transferIndex) on conflict replace
);

CREATE INDEX if not exists seqIndex on transfer(seq);
CREATE INDEX if not exists txIDIndex on transfer(txID);
CREATE INDEX if not exists senderIndex on transfer(sender);
CREATE INDEX if not exists recipientIndex on transfer(recipient);
`
