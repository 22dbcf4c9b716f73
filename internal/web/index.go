package web

// Single page bound to /state/stream and the action endpoints.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Crypto Price Predictor</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Press+Start+2P&family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --good:#1b9aaa;
      --bad:#d7263d;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(520px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
      display:flex;
      flex-direction:column;
      gap:1.5rem;
    }
    h1 {
      font-family:'Press Start 2P','Space Mono',monospace;
      font-size:.9rem;
      letter-spacing:.1em;
      margin:0;
    }
    .subtitle { color:var(--ink-mid); font-size:.75rem; margin:.6rem 0 0; }
    .controls { display:flex; gap:.8rem; }
    select, button {
      font-family:inherit;
      font-size:.8rem;
      border:2px solid var(--ink);
      background:#fff;
      padding:.5rem .8rem;
      box-shadow:4px 4px 0 rgba(0,0,0,.15);
      cursor:pointer;
    }
    select { flex:1; }
    button:disabled { color:var(--ink-soft); cursor:wait; }
    .mode { display:flex; justify-content:space-between; align-items:center; font-size:.7rem; text-transform:uppercase; letter-spacing:.12em; }
    .banner { border:2px solid var(--bad); color:var(--bad); padding:.8rem; font-size:.75rem; display:none; justify-content:space-between; gap:1rem; }
    .banner.visible { display:flex; }
    .banner button { box-shadow:none; border:none; background:none; color:var(--bad); padding:0; }
    .card { border:3px solid var(--ink); background:#fff; padding:1.5rem; box-shadow:8px 8px 0 rgba(0,0,0,.15); }
    .card .symbol { font-family:'Press Start 2P','Space Mono',monospace; font-size:.8rem; }
    .card .label { font-size:.62rem; text-transform:uppercase; letter-spacing:.2em; color:var(--ink-mid); margin-top:1rem; }
    .card .price { font-size:1.8rem; font-weight:700; color:var(--good); }
    .card .footer { margin-top:1.2rem; font-size:.65rem; color:var(--ink-mid); }
    .empty { text-align:center; color:var(--ink-mid); }
    .loading { text-align:center; padding:2rem; letter-spacing:.2em; }
  </style>
</head>
<body>
  <div id="app">
    <header>
      <h1>Crypto Price Predictor</h1>
      <p class="subtitle">Get future price predictions for your favorite cryptocurrencies</p>
    </header>
    <div class="controls">
      <select id="symbol"></select>
      <button id="predict">Predict</button>
    </div>
    <div class="mode">
      <span id="modeLabel">Live</span>
      <button id="toggle">Toggle demo mode</button>
    </div>
    <div id="banner" class="banner"><span id="bannerText"></span><button id="dismiss">✕</button></div>
    <div id="result"></div>
  </div>
<script>
const symbolEl = document.getElementById('symbol');
const predictEl = document.getElementById('predict');
const toggleEl = document.getElementById('toggle');
const modeEl = document.getElementById('modeLabel');
const bannerEl = document.getElementById('banner');
const bannerTextEl = document.getElementById('bannerText');
const resultEl = document.getElementById('result');
let dismissedSeq = -1;

const formatPrice = (value) => '$' + Number(value).toLocaleString(undefined, { minimumFractionDigits:2, maximumFractionDigits:8 });
const formatDate = (value) => new Date(value + 'T00:00:00Z').toLocaleDateString('en-US', { year:'numeric', month:'long', day:'numeric', timeZone:'UTC' });

const post = (path, params) => fetch(path, { method:'POST', body:new URLSearchParams(params || {}) });

function el(tag, cls, text){
  const node = document.createElement(tag);
  if(cls){ node.className = cls; }
  if(text !== undefined){ node.textContent = text; }
  return node;
}

function emptyCard(mode){
  const card = el('div', 'card empty');
  card.append(el('p', '', 'No data available'));
  card.append(el('p', 'footer', mode === 'demo' ? 'No sample data for this symbol' : 'Try selecting a different symbol or enable demo mode'));
  return card;
}

function populatedCard(result, mode){
  const card = el('div', 'card');
  card.append(el('div', 'symbol', result.symbol + ' ↗'));
  card.append(el('div', 'label', 'Predicted Price'));
  card.append(el('div', 'price', formatPrice(result.final_prediction.predicted_price_usdt)));
  card.append(el('div', 'label', 'Prediction Date'));
  card.append(el('div', '', formatDate(result.final_prediction.date)));
  card.append(el('div', 'footer', mode === 'demo' ? 'Sample data for demonstration' : 'Based on historical data analysis'));
  return card;
}

function render(snap){
  const state = snap.state;
  modeEl.textContent = snap.mode === 'demo' ? 'Demo mode' : 'Live mode';
  if(symbolEl.value !== snap.symbol){ symbolEl.value = snap.symbol; }
  predictEl.disabled = state.kind === 'loading';

  const showBanner = state.kind === 'error' && snap.seq !== dismissedSeq;
  bannerEl.classList.toggle('visible', showBanner);
  bannerTextEl.textContent = showBanner ? state.message : '';
  bannerEl.dataset.seq = snap.seq;

  resultEl.replaceChildren();
  switch(state.kind){
    case 'idle':
      resultEl.append(el('div', 'empty', 'Choose a symbol and press Predict'));
      break;
    case 'loading':
      resultEl.append(el('div', 'loading', 'Loading…'));
      break;
    case 'populated':
      resultEl.append(populatedCard(state.result, snap.mode));
      break;
    default:
      resultEl.append(emptyCard(snap.mode));
  }
}

async function loadSymbols(){
  const resp = await fetch('/api/symbols');
  const body = await resp.json();
  symbolEl.replaceChildren(...body.symbols.map((s) => el('option', '', s)));
}

function connectSSE(){
  const source = new EventSource('/state/stream');
  source.addEventListener('state', (event) => {
    try{
      render(JSON.parse(event.data));
    }catch(err){
      console.error('state parse', err);
    }
  });
  source.addEventListener('error', () => {
    source.close();
    setTimeout(connectSSE, 2000);
  });
}

symbolEl.addEventListener('change', () => post('/api/symbol', { symbol:symbolEl.value }));
predictEl.addEventListener('click', () => post('/api/symbol', { symbol:symbolEl.value }));
toggleEl.addEventListener('click', () => post('/api/mode/toggle'));
document.getElementById('dismiss').addEventListener('click', () => {
  dismissedSeq = Number(bannerEl.dataset.seq);
  bannerEl.classList.remove('visible');
});

loadSymbols().then(connectSSE);
</script>
</body>
</html>`
